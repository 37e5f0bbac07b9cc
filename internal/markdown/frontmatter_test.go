package markdown

import "testing"

func TestExtractFrontmatter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Frontmatter
		wantErr bool
	}{
		{
			name:  "no frontmatter",
			input: "# Hello\n\nWorld",
			want:  nil,
		},
		{
			name:  "basic frontmatter",
			input: "---\ntitle: My Guide\ntags: [go, test]\n---\n\n# Content",
			want:  &Frontmatter{Title: "My Guide", EndLine: 4},
		},
		{
			name:  "empty frontmatter",
			input: "---\n---\n# Content",
			want:  &Frontmatter{EndLine: 2},
		},
		{
			name:    "invalid yaml",
			input:   "---\ntitle: [unclosed\n---\n",
			want:    &Frontmatter{EndLine: 3},
			wantErr: true,
		},
		{
			name:  "unclosed frontmatter",
			input: "---\ntitle: Unclosed\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFrontmatter([]byte(tt.input))
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected non-nil frontmatter")
			}
			if got.Title != tt.want.Title {
				t.Errorf("title: got %q, want %q", got.Title, tt.want.Title)
			}
			if got.EndLine != tt.want.EndLine {
				t.Errorf("end line: got %d, want %d", got.EndLine, tt.want.EndLine)
			}
			if (got.Err != nil) != tt.wantErr {
				t.Errorf("err: got %v, want error %v", got.Err, tt.wantErr)
			}
		})
	}
}

func TestBlankFrontmatter(t *testing.T) {
	input := []byte("---\na: 1\n---\n# H\n")
	got := blankFrontmatter(input, ExtractFrontmatter(input))
	want := "   \n    \n   \n# H\n"
	if string(got) != want {
		t.Errorf("blankFrontmatter = %q, want %q", got, want)
	}
	if string(input) != "---\na: 1\n---\n# H\n" {
		t.Error("input was modified")
	}
}
