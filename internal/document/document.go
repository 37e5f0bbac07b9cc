// Package document holds the host side of a TOC build: something that can
// hand out its full text and accept exactly one replacement at a time.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfassina/mdtoc/internal/toc"
)

var (
	// ErrRegionOutOfRange is returned when an edit does not fit the text.
	ErrRegionOutOfRange = errors.New("region out of range")
	// ErrStale is returned when the text changed since it was read.
	ErrStale = errors.New("document changed since it was read")
)

// Document is a text buffer owned by a host.
type Document interface {
	// Text returns the full content.
	Text() (string, error)
	// Apply performs the edit as one atomic change, or not at all.
	Apply(e toc.Edit) error
}

// CheckEdit verifies that e addresses a valid region of text.
func CheckEdit(text string, e toc.Edit) error {
	r := e.Region
	if r.Begin < 0 || r.End > len(text) || r.Begin > r.End {
		return fmt.Errorf("%w: [%d,%d) in %d bytes", ErrRegionOutOfRange, r.Begin, r.End, len(text))
	}
	return nil
}

// Position converts a byte offset into a 0-based row and byte column.
func Position(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	head := text[:offset]
	row := strings.Count(head, "\n")
	col := offset - (strings.LastIndexByte(head, '\n') + 1)
	return row, col
}

// Offset converts a 0-based row and byte column into a byte offset. Rows and
// columns past the end are clamped.
func Offset(text string, row, col int) int {
	pos := 0
	for i := 0; i < row; i++ {
		nl := strings.IndexByte(text[pos:], '\n')
		if nl == -1 {
			return len(text)
		}
		pos += nl + 1
	}
	end := strings.IndexByte(text[pos:], '\n')
	if end == -1 {
		end = len(text) - pos
	}
	if col < 0 {
		col = 0
	}
	if col > end {
		col = end
	}
	return pos + col
}
