package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatchable(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/docs/a.md", true},
		{"/docs/A.MD", true},
		{"/docs/b.mkd", true},
		{"/docs/.a.md", false},
		{"/docs/.a.md.123456", false},
		{"/docs/main.go", false},
		{"/docs/dir", false},
	}
	for _, tt := range tests {
		if got := watchable(tt.path); got != tt.want {
			t.Errorf("watchable(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherRefreshesOnWrite(t *testing.T) {
	root := t.TempDir()
	r, _ := newTestRefresher(t, root)

	changed := make(chan string, 4)
	w, err := NewWatcher(r, root, nil, func(path string) { changed <- path })
	if err != nil {
		t.Fatal(err)
	}
	go w.Start()
	defer w.Stop()

	path := filepath.Join(root, "doc.md")
	if err := os.WriteFile(path, []byte(staleDoc), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("changed path = %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for refresh")
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "- [One](#one)") {
		t.Errorf("file not refreshed: %q", data)
	}
}
