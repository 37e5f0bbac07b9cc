package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfassina/mdtoc/internal/toc"
)

// File is a Document backed by a file on disk. Apply rewrites the file only
// when the edit changes its content.
type File struct {
	path string
	text string
	mode os.FileMode
	read bool
}

// OpenFile reads path into a File.
func OpenFile(path string) (*File, error) {
	f := &File{path: path}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	info, err := os.Stat(f.path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	f.text = string(data)
	f.mode = info.Mode().Perm()
	f.read = true
	return nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) Text() (string, error) {
	if !f.read {
		if err := f.load(); err != nil {
			return "", err
		}
	}
	return f.text, nil
}

// Apply writes the edited content back. It fails with ErrStale when the file
// changed on disk since it was read.
func (f *File) Apply(e toc.Edit) error {
	if err := CheckEdit(f.text, e); err != nil {
		return err
	}
	if e.Noop(f.text) {
		return nil
	}

	current, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	if string(current) != f.text {
		return fmt.Errorf("%s: %w", f.path, ErrStale)
	}

	updated := e.ApplyTo(f.text)
	if err := writeAtomic(f.path, []byte(updated), f.mode); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	f.text = updated
	return nil
}

// writeAtomic replaces path through a temporary file in the same directory
// so readers never observe a partial write.
func writeAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close(), os.Remove(name))
	}
	if err := tmp.Chmod(mode); err != nil {
		return errors.Join(err, tmp.Close(), os.Remove(name))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(err, os.Remove(name))
	}
	if err := os.Rename(name, path); err != nil {
		return errors.Join(err, os.Remove(name))
	}
	return nil
}
