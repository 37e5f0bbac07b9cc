package toc

// Heading is a RawHeading whose level has been normalized.
type Heading struct {
	RawHeading
	RawLevel int
}

// Normalize rewrites the levels of headings into a valid outline: the first
// heading is level 1 and no heading is more than one level deeper than the
// heading before it.
func Normalize(headings []RawHeading) []Heading {
	levels := make([]int, len(headings))
	for i, h := range headings {
		levels[i] = h.Level
	}
	levels = NormalizeLevels(levels)

	out := make([]Heading, len(headings))
	for i, h := range headings {
		out[i] = Heading{RawHeading: h, RawLevel: h.Level}
		out[i].Level = levels[i]
	}
	return out
}

// NormalizeLevels applies the level rules to a bare level sequence. The
// input slice is not modified.
func NormalizeLevels(raw []int) []int {
	if len(raw) == 0 {
		return nil
	}
	levels := make([]int, len(raw))
	copy(levels, raw)

	minLevel := levels[0]
	for _, l := range levels {
		if l < minLevel {
			minLevel = l
		}
	}
	if minLevel > 1 {
		for i := range levels {
			levels[i] -= minLevel - 1
		}
	}
	levels[0] = 1

	// Clamp jumps wider than one level. The run of headings directly after a
	// clamped one that shared its old level moves with it.
	for i := 1; i < len(levels); i++ {
		if levels[i]-levels[i-1] <= 1 {
			continue
		}
		before := levels[i]
		after := levels[i-1] + 1
		levels[i] = after
		for n := i + 1; n < len(levels); n++ {
			if levels[n] != before {
				break
			}
			levels[n] = after
		}
	}
	return levels
}
