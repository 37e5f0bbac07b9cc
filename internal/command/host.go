package command

import "github.com/pfassina/mdtoc/internal/document"

// FileHost runs commands against a file on disk. The cursor is fixed at At
// and status messages go to Notify when it is set.
type FileHost struct {
	*document.File
	At     int
	Notify func(msg string)
}

// OpenFileHost reads path and places the cursor at the start of the given
// 1-based line.
func OpenFileHost(path string, line int) (*FileHost, error) {
	f, err := document.OpenFile(path)
	if err != nil {
		return nil, err
	}
	text, _ := f.Text()
	at := 0
	if line > 1 {
		at = document.Offset(text, line-1, 0)
	}
	return &FileHost{File: f, At: at}, nil
}

func (h *FileHost) Cursor() (int, error) {
	return h.At, nil
}

func (h *FileHost) Status(msg string) {
	if h.Notify != nil {
		h.Notify(msg)
	}
}
