package toc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	OpenTag  = "<!-- MarkdownTOC -->"
	CloseTag = "<!-- /MarkdownTOC -->"
)

var openPattern = regexp.MustCompile(`(?i)^<!-- MarkdownTOC (.*)-->$`)

// MarkerPair is an open/close marker pair found in a document together with
// the options its attributes resolve to.
type MarkerPair struct {
	Open    Region // includes the line terminator
	Close   Region // includes the line terminator, if any
	Options Options
	// Warnings lists attributes that were ignored.
	Warnings []string
}

// Inner is the region strictly between the two marker lines.
func (p MarkerPair) Inner() Region {
	return Region{Begin: p.Open.End, End: p.Close.Begin}
}

// ParseMarkerAttrs applies space separated key=value attributes on top of
// defaults. Unknown keys and malformed values are reported and leave the
// default in place.
func ParseMarkerAttrs(attrs string, defaults Options) (Options, []string) {
	opts := defaults
	var warnings []string
	for _, field := range strings.Fields(attrs) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ignoring attribute %q: expected key=value", field))
			continue
		}
		switch strings.ToLower(key) {
		case "depth":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				warnings = append(warnings, fmt.Sprintf("ignoring depth=%s: not a non-negative integer", value))
				continue
			}
			opts.Depth = n
		case "autolink":
			b, err := parseBool(value)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("ignoring autolink=%s: %v", value, err))
				continue
			}
			opts.Autolink = b
		case "bracket":
			br, err := ParseBracket(value)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("ignoring bracket=%s: %v", value, err))
				continue
			}
			opts.Bracket = br
		default:
			warnings = append(warnings, fmt.Sprintf("ignoring unknown attribute %q", key))
		}
	}
	return opts, warnings
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "t", "true", "on", "1":
		return true, nil
	case "n", "no", "f", "false", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// LocateMarkers returns the first open marker, in document order, that has a
// close marker after it. Markers inside fenced code blocks are ignored.
func LocateMarkers(text string, defaults Options) (MarkerPair, bool) {
	lines := splitLines(text)
	areas := CodeBlockAreas(fenceRegions(lines))

	type open struct {
		region Region
		attrs  string
	}
	var opens []open
	var closes []Region
	for _, ln := range lines {
		if insideAny(ln.Begin, areas) {
			continue
		}
		// The open marker needs its own terminated line.
		if m := openPattern.FindStringSubmatch(ln.text); m != nil && ln.next > ln.End {
			opens = append(opens, open{region: Region{Begin: ln.Begin, End: ln.next}, attrs: m[1]})
			continue
		}
		if ln.text == CloseTag {
			closes = append(closes, Region{Begin: ln.Begin, End: ln.next})
		}
	}

	for _, o := range opens {
		for _, c := range closes {
			if c.Begin < o.region.End {
				continue
			}
			opts, warnings := ParseMarkerAttrs(o.attrs, defaults)
			return MarkerPair{Open: o.region, Close: c, Options: opts, Warnings: warnings}, true
		}
	}
	return MarkerPair{}, false
}
