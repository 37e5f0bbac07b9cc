package toc

import "regexp"

var fencePattern = regexp.MustCompile("^`{3,}[^`]*$")

// FenceLines returns the regions of every triple-backtick fence line in text,
// in document order.
func FenceLines(text string) []Region {
	return fenceRegions(splitLines(text))
}

func fenceRegions(lines []line) []Region {
	var fences []Region
	for _, ln := range lines {
		if fencePattern.MatchString(ln.text) {
			fences = append(fences, ln.Region)
		}
	}
	return fences
}

// CodeBlockAreas pairs fence lines two at a time. A trailing fence without a
// partner opens no area.
func CodeBlockAreas(fences []Region) []Region {
	var areas []Region
	for i := 0; i+1 < len(fences); i += 2 {
		areas = append(areas, Region{Begin: fences[i].Begin, End: fences[i+1].Begin})
	}
	return areas
}

// FilterOutCodeBlocks drops every item whose begin offset lies strictly
// inside one of the code block areas delimited by fences.
func FilterOutCodeBlocks(items []Region, fences []Region) []Region {
	areas := CodeBlockAreas(fences)
	var kept []Region
	for _, item := range items {
		if !insideAny(item.Begin, areas) {
			kept = append(kept, item)
		}
	}
	return kept
}

func insideAny(pos int, areas []Region) bool {
	for _, a := range areas {
		if a.Contains(pos) {
			return true
		}
	}
	return false
}
