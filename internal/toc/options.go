package toc

import "fmt"

// Bracket selects how links are written.
type Bracket string

const (
	// BracketRound writes inline links: [text](#anchor).
	BracketRound Bracket = "round"
	// BracketSquare writes reference links: [text][anchor].
	BracketSquare Bracket = "bracket"
)

// ParseBracket validates a bracket style name.
func ParseBracket(s string) (Bracket, error) {
	switch Bracket(s) {
	case BracketRound, BracketSquare:
		return Bracket(s), nil
	}
	return "", fmt.Errorf("unknown bracket style %q (want round or bracket)", s)
}

// Options controls one TOC build. It is resolved once per invocation and
// never mutated afterwards.
type Options struct {
	Depth    int // maximum ATX level, 0 for no limit
	Autolink bool
	Bracket  Bracket
}

// DefaultOptions is used when no configuration is supplied.
func DefaultOptions() Options {
	return Options{Depth: 0, Autolink: true, Bracket: BracketRound}
}
