package toc

import "strings"

// Region is a half-open [Begin, End) byte range into a document.
type Region struct {
	Begin int
	End   int
}

// Len returns the number of bytes covered by the region.
func (r Region) Len() int {
	return r.End - r.Begin
}

// Contains reports whether pos lies strictly inside the region.
func (r Region) Contains(pos int) bool {
	return r.Begin < pos && pos < r.End
}

// Edit replaces the bytes covered by Region with Text.
type Edit struct {
	Region Region
	Text   string
}

// Noop reports whether applying the edit to text would leave it unchanged.
func (e Edit) Noop(text string) bool {
	if e.Region.Begin < 0 || e.Region.End > len(text) || e.Region.Begin > e.Region.End {
		return false
	}
	return text[e.Region.Begin:e.Region.End] == e.Text
}

// ApplyTo returns text with the edit applied. Callers validate the region first.
func (e Edit) ApplyTo(text string) string {
	return text[:e.Region.Begin] + e.Text + text[e.Region.End:]
}

// line is one physical line of a document. Region excludes the line
// terminator, next is the offset of the following line.
type line struct {
	Region
	text string
	next int
	num  int // 1-based
}

func splitLines(text string) []line {
	var lines []line
	pos := 0
	num := 0
	for pos < len(text) {
		num++
		end := strings.IndexByte(text[pos:], '\n')
		next := len(text)
		if end == -1 {
			end = len(text)
		} else {
			end += pos
			next = end + 1
		}
		content := text[pos:end]
		content = strings.TrimSuffix(content, "\r")
		lines = append(lines, line{
			Region: Region{Begin: pos, End: pos + len(content)},
			text:   content,
			next:   next,
			num:    num,
		})
		pos = next
	}
	return lines
}

// lineStart returns the offset of the start of the line containing pos.
func lineStart(text string, pos int) int {
	if pos > len(text) {
		pos = len(text)
	}
	if pos <= 0 {
		return 0
	}
	return strings.LastIndexByte(text[:pos], '\n') + 1
}
