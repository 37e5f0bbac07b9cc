package document

import (
	"sync"

	"github.com/pfassina/mdtoc/internal/toc"
)

// Buffer is an in-memory Document. Revision increases with every applied
// edit.
type Buffer struct {
	mu       sync.Mutex
	text     string
	revision int
}

// NewBuffer returns a buffer holding text.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

func (b *Buffer) Text() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, nil
}

func (b *Buffer) Apply(e toc.Edit) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := CheckEdit(b.text, e); err != nil {
		return err
	}
	b.text = e.ApplyTo(b.text)
	b.revision++
	return nil
}

// String returns the current content.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Revision returns the number of edits applied so far.
func (b *Buffer) Revision() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revision
}
