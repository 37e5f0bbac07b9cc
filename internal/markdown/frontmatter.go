package markdown

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is a leading "---" delimited YAML block.
type Frontmatter struct {
	Title  string
	Fields map[string]any
	// EndLine is the 1-based line of the closing delimiter.
	EndLine int
	// Err is set when the block is not valid YAML. The block is still
	// excluded from the document body.
	Err error
}

// ExtractFrontmatter returns the frontmatter at the top of content, or nil
// when there is none or it is never closed.
func ExtractFrontmatter(content []byte) *Frontmatter {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || strings.TrimSpace(string(lines[0])) != "---" {
		return nil
	}

	end := 0
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(string(lines[i])) == "---" {
			end = i
			break
		}
	}
	if end == 0 {
		return nil // unclosed frontmatter
	}

	fm := &Frontmatter{EndLine: end + 1}
	block := bytes.Join(lines[1:end], []byte("\n"))
	if err := yaml.Unmarshal(block, &fm.Fields); err != nil {
		fm.Err = err
		return fm
	}
	if title, ok := fm.Fields["title"].(string); ok {
		fm.Title = title
	}
	return fm
}

// blankFrontmatter replaces the frontmatter lines with empty lines so byte
// offsets and line numbers of the body are preserved.
func blankFrontmatter(content []byte, fm *Frontmatter) []byte {
	if fm == nil {
		return content
	}
	out := append([]byte(nil), content...)
	line := 1
	for i, c := range out {
		if line > fm.EndLine {
			break
		}
		if c == '\n' {
			line++
			continue
		}
		out[i] = ' '
	}
	return out
}
