package config

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/pfassina/mdtoc/internal/toc"
)

//go:embed defaults.toml
var defaultsTOML []byte

// Defaults are the TOC options used when a marker carries no attributes.
type Defaults struct {
	Depth    int
	Autolink bool
	Bracket  toc.Bracket
}

// Settings is the merged configuration for one invocation.
type Settings struct {
	Defaults Defaults
	// Logging enables advisory status messages.
	Logging bool
	// Warnings collects problems found while merging overlays.
	Warnings []string
}

// Default returns the settings from the embedded base resource.
func Default() Settings {
	var s Settings
	if _, err := s.merge(defaultsTOML, "defaults.toml"); err != nil {
		panic(fmt.Sprintf("embedded defaults.toml: %v", err))
	}
	return s
}

// Options resolves the immutable TOC options for a build.
func (s Settings) Options() toc.Options {
	return toc.Options{
		Depth:    s.Defaults.Depth,
		Autolink: s.Defaults.Autolink,
		Bracket:  s.Defaults.Bracket,
	}
}

// fileConfig mirrors Settings with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	Logging  *bool `toml:"logging"`
	Defaults struct {
		Depth    *int    `toml:"depth"`
		Autolink *bool   `toml:"autolink"`
		Bracket  *string `toml:"bracket"`
	} `toml:"defaults"`
}

// merge decodes data and overrides every key it sets. Invalid values are
// reported as warnings and leave the previous value in place.
func (s *Settings) merge(data []byte, name string) (toml.MetaData, error) {
	var fc fileConfig
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return md, fmt.Errorf("parse %s: %w", name, err)
	}

	for _, key := range md.Undecoded() {
		s.warnf("%s: ignoring unknown key %q", name, key.String())
	}

	if fc.Logging != nil {
		s.Logging = *fc.Logging
	}
	if d := fc.Defaults.Depth; d != nil {
		if *d < 0 {
			s.warnf("%s: ignoring negative depth %d", name, *d)
		} else {
			s.Defaults.Depth = *d
		}
	}
	if fc.Defaults.Autolink != nil {
		s.Defaults.Autolink = *fc.Defaults.Autolink
	}
	if b := fc.Defaults.Bracket; b != nil {
		br, err := toc.ParseBracket(*b)
		if err != nil {
			s.warnf("%s: %v", name, err)
		} else {
			s.Defaults.Bracket = br
		}
	}
	return md, nil
}

func (s *Settings) warnf(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}
