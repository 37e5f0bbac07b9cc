package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pfassina/mdtoc/internal/toc"
)

func TestRecordAndHash(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	hash, err := db.Hash("a.md")
	if err != nil {
		t.Fatal(err)
	}
	if hash != "" {
		t.Errorf("unknown path hash = %q, want empty", hash)
	}

	entries := []toc.Entry{
		{Level: 1, Text: "Intro", Anchor: "intro", Line: 5},
		{Level: 2, Text: "Usage", Anchor: "usage", Line: 9},
	}
	rec := Record{Path: "a.md", Hash: "abc", Outcome: "refresh TOC content", Entries: 2, ModTime: time.Unix(1000, 0)}
	if err := db.Record(rec, entries); err != nil {
		t.Fatal(err)
	}

	hash, _ = db.Hash("a.md")
	if hash != "abc" {
		t.Errorf("hash = %q, want abc", hash)
	}

	anchors, err := db.Anchors("a.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(anchors) != 2 || anchors[0].Anchor != "intro" || anchors[1].Line != 9 {
		t.Errorf("anchors = %+v", anchors)
	}
}

func TestRecordReplacesAnchors(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	db.Record(Record{Path: "a.md", Hash: "1"}, []toc.Entry{{Level: 1, Text: "Old", Anchor: "old"}})
	db.Record(Record{Path: "a.md", Hash: "2"}, []toc.Entry{{Level: 1, Text: "New", Anchor: "new"}})

	anchors, _ := db.Anchors("a.md")
	if len(anchors) != 1 || anchors[0].Text != "New" {
		t.Errorf("anchors = %+v, want only New", anchors)
	}

	list, _ := db.List()
	if len(list) != 1 || list[0].Hash != "2" {
		t.Errorf("list = %+v", list)
	}
}

func TestListOrder(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	db.Record(Record{Path: "old.md", UpdatedAt: time.Unix(100, 0)}, nil)
	db.Record(Record{Path: "new.md", UpdatedAt: time.Unix(200, 0)}, nil)

	list, err := db.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Path != "new.md" || list[1].Path != "old.md" {
		t.Errorf("list = %+v", list)
	}
	if !list[0].UpdatedAt.Equal(time.Unix(200, 0)) {
		t.Errorf("UpdatedAt = %v", list[0].UpdatedAt)
	}
}

func TestDelete(t *testing.T) {
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	db.Record(Record{Path: "a.md", Hash: "x"}, []toc.Entry{{Level: 1, Text: "A", Anchor: "a"}})
	if err := db.Delete("a.md"); err != nil {
		t.Fatal(err)
	}
	if hash, _ := db.Hash("a.md"); hash != "" {
		t.Errorf("hash after delete = %q", hash)
	}
	if anchors, _ := db.Anchors("a.md"); len(anchors) != 0 {
		t.Errorf("anchors after delete = %+v", anchors)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Record(Record{Path: "a.md", Hash: "h"}, nil); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if hash, _ := db.Hash("a.md"); hash != "h" {
		t.Errorf("hash after reopen = %q, want h", hash)
	}
}

func TestDataDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmp, "mdtoc", "journal.db"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
