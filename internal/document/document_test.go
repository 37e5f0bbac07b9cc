package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pfassina/mdtoc/internal/toc"
)

func TestPositionOffset(t *testing.T) {
	text := "ab\ncde\n\nf"
	tests := []struct {
		offset   int
		row, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{7, 2, 0},
		{8, 3, 0},
		{9, 3, 1},
	}
	for _, tt := range tests {
		row, col := Position(text, tt.offset)
		if row != tt.row || col != tt.col {
			t.Errorf("Position(%d) = %d,%d want %d,%d", tt.offset, row, col, tt.row, tt.col)
		}
		if got := Offset(text, tt.row, tt.col); got != tt.offset {
			t.Errorf("Offset(%d,%d) = %d want %d", tt.row, tt.col, got, tt.offset)
		}
	}
}

func TestOffset_Clamps(t *testing.T) {
	text := "ab\ncd"
	if got := Offset(text, 0, 10); got != 2 {
		t.Errorf("column past end: got %d, want 2", got)
	}
	if got := Offset(text, 5, 0); got != len(text) {
		t.Errorf("row past end: got %d, want %d", got, len(text))
	}
}

func TestBuffer_Apply(t *testing.T) {
	b := NewBuffer("hello world")
	if err := b.Apply(toc.Edit{Region: toc.Region{Begin: 6, End: 11}, Text: "there"}); err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "hello there" {
		t.Errorf("got %q", got)
	}
	if b.Revision() != 1 {
		t.Errorf("revision: got %d, want 1", b.Revision())
	}

	err := b.Apply(toc.Edit{Region: toc.Region{Begin: 5, End: 40}})
	if !errors.Is(err, ErrRegionOutOfRange) {
		t.Errorf("expected ErrRegionOutOfRange, got %v", err)
	}
	if got := b.String(); got != "hello there" {
		t.Errorf("failed edit changed buffer: %q", got)
	}
}

func TestFile_Apply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(path, []byte("# A\n"), 0600); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Apply(toc.Edit{Region: toc.Region{Begin: 0, End: 0}, Text: "x\n"}); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "x\n# A\n" {
		t.Errorf("file content: got %q", data)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode: got %v, want 0600", info.Mode().Perm())
	}
}

func TestFile_ApplyStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	os.WriteFile(path, []byte("# A\n"), 0644)

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	os.WriteFile(path, []byte("# B\n"), 0644)

	err = f.Apply(toc.Edit{Region: toc.Region{Begin: 0, End: 0}, Text: "x"})
	if !errors.Is(err, ErrStale) {
		t.Errorf("expected ErrStale, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# B\n" {
		t.Errorf("stale apply wrote file: %q", data)
	}
}

func TestFile_NoopDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	os.WriteFile(path, []byte("abc"), 0644)

	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	os.Remove(path)

	if err := f.Apply(toc.Edit{Region: toc.Region{Begin: 0, End: 1}, Text: "a"}); err != nil {
		t.Errorf("no-op edit should not touch disk: %v", err)
	}
}
