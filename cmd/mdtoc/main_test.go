package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/pfassina/mdtoc/internal/config"
	"github.com/pfassina/mdtoc/internal/logging"
	"github.com/pfassina/mdtoc/internal/toc"
	"github.com/pfassina/mdtoc/internal/ui"
)

func testEnv(out *bytes.Buffer) *Env {
	return &Env{
		Settings: config.Default(),
		Logger:   logging.Discard(),
		Styles:   ui.DefaultStyles(),
		Out:      out,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInsertCmd(t *testing.T) {
	var out bytes.Buffer
	path := writeFile(t, t.TempDir(), "doc.md", "# A\n## B\n")

	if err := (&InsertCmd{File: path, At: 1}).Run(testEnv(&out)); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), toc.OpenTag+"\n\n- [A](#a)\n") {
		t.Errorf("file = %q", data)
	}
	if !strings.Contains(out.String(), "inserted TOC") {
		t.Errorf("output = %q", out.String())
	}
}

func TestUpdateCmd(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	withTOC := writeFile(t, dir, "a.md", toc.OpenTag+"\n"+toc.CloseTag+"\n# A\n")
	plain := writeFile(t, dir, "b.md", "# B\n")

	if err := (&UpdateCmd{Files: []string{withTOC, plain}}).Run(testEnv(&out)); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(withTOC)
	if !strings.Contains(string(data), "- [A](#a)") {
		t.Errorf("a.md = %q", data)
	}
	data, _ = os.ReadFile(plain)
	if string(data) != "# B\n" {
		t.Errorf("b.md modified: %q", data)
	}
	if !strings.Contains(out.String(), "cannot find TOC tags") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCheckCmd(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	good := writeFile(t, dir, "good.md", "# Hello World\n")
	bad := writeFile(t, dir, "bad.md", "# Use a.b\n")

	if err := (&CheckCmd{Files: []string{good}}).Run(testEnv(&out)); err != nil {
		t.Errorf("good file failed: %v", err)
	}
	if err := (&CheckCmd{Files: []string{good, bad}}).Run(testEnv(&out)); err == nil {
		t.Error("expected failure for unresolved anchor")
	}
	if !strings.Contains(out.String(), "#use-ab") {
		t.Errorf("output = %q", out.String())
	}
}

func TestStatusCmd(t *testing.T) {
	var out bytes.Buffer
	journal := filepath.Join(t.TempDir(), "journal.db")
	if err := (&StatusCmd{Journal: journal}).Run(testEnv(&out)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "no documents") {
		t.Errorf("output = %q", out.String())
	}
}

func TestOutlineEntries(t *testing.T) {
	text := "# Top\n<!-- MarkdownTOC autolink=false -->\n" + toc.CloseTag + "\n## Sub\n"
	entries := outlineEntries(text, toc.DefaultOptions())
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Linked {
		t.Errorf("marker attributes not applied: %+v", entries[0])
	}
}

func TestParseInsertCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "intro\n# A\n")
	cfg := writeFile(t, dir, "extra.toml", "[defaults]\nbracket = \"bracket\"\n")

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("mdtoc"), kong.Exit(func(int) {}))
	if err != nil {
		t.Fatal(err)
	}
	ctx, err := parser.Parse([]string{"--config", cfg, "insert", path, "--at", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Run(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	want := "intro\n" + toc.OpenTag + "\n\n- [A][a]\n\n" + toc.CloseTag + "\n# A\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}
