package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/neovim/go-client/nvim"

	"github.com/pfassina/mdtoc/internal/document"
	"github.com/pfassina/mdtoc/internal/logging"
	"github.com/pfassina/mdtoc/internal/toc"
)

// api is the subset of the Neovim client a BufferHost needs.
type api interface {
	BufferLines(buffer nvim.Buffer, start, end int, strict bool) ([][]byte, error)
	ExecLua(code string, result interface{}, args ...interface{}) error
}

// BufferHost exposes a Neovim buffer as a command host. Offsets map to the
// buffer joined with "\n" and terminated by a final newline.
type BufferHost struct {
	client api
	buf    nvim.Buffer
	logger *log.Logger

	text string
	tick int
	read bool
}

// NewBufferHost returns a host for buf. A nil logger discards output.
func NewBufferHost(client api, buf nvim.Buffer, logger *log.Logger) *BufferHost {
	return &BufferHost{client: client, buf: buf, logger: logging.OrDiscard(logger)}
}

// Text reads the buffer and remembers its changedtick for Apply.
func (h *BufferHost) Text() (string, error) {
	var tick int
	if err := h.client.ExecLua("return vim.api.nvim_buf_get_changedtick(...)", &tick, int(h.buf)); err != nil {
		return "", fmt.Errorf("read changedtick: %w", err)
	}
	lines, err := h.client.BufferLines(h.buf, 0, -1, false)
	if err != nil {
		return "", fmt.Errorf("read buffer lines: %w", err)
	}
	h.text = joinLines(lines)
	h.tick = tick
	h.read = true
	return h.text, nil
}

// Cursor returns the byte offset of the cursor in the current window.
func (h *BufferHost) Cursor() (int, error) {
	if !h.read {
		if _, err := h.Text(); err != nil {
			return 0, err
		}
	}
	var pos [2]int
	if err := h.client.ExecLua("return vim.api.nvim_win_get_cursor(0)", &pos); err != nil {
		return 0, fmt.Errorf("read cursor: %w", err)
	}
	return document.Offset(h.text, pos[0]-1, pos[1]), nil
}

const setLinesLua = `
local buf, tick, first, last, lines = ...
if vim.api.nvim_buf_get_changedtick(buf) ~= tick then
  error('buffer changed since it was read')
end
vim.api.nvim_buf_set_lines(buf, first, last, false, lines)
`

const setTextLua = `
local buf, tick, srow, scol, erow, ecol, lines = ...
if vim.api.nvim_buf_get_changedtick(buf) ~= tick then
  error('buffer changed since it was read')
end
vim.api.nvim_buf_set_text(buf, srow, scol, erow, ecol, lines)
`

// Apply replaces the edit's region in a single API call, so the change is
// one undo step. The call fails if the buffer changed after Text.
func (h *BufferHost) Apply(edit toc.Edit) error {
	if !h.read {
		return fmt.Errorf("%w: buffer not read", document.ErrStale)
	}
	if err := document.CheckEdit(h.text, edit); err != nil {
		return err
	}
	if edit.Noop(h.text) {
		return nil
	}

	var err error
	if first, last, lines, ok := lineEdit(h.text, edit); ok {
		err = h.client.ExecLua(setLinesLua, nil, int(h.buf), h.tick, first, last, lines)
	} else {
		srow, scol := document.Position(h.text, edit.Region.Begin)
		erow, ecol := document.Position(h.text, edit.Region.End)
		err = h.client.ExecLua(setTextLua, nil, int(h.buf), h.tick, srow, scol, erow, ecol,
			strings.Split(edit.Text, "\n"))
	}
	if err != nil {
		return fmt.Errorf("apply edit: %w", err)
	}

	h.text = edit.ApplyTo(h.text)
	h.read = false
	return nil
}

// Status shows msg through vim.notify. Error reports use the WARN level.
func (h *BufferHost) Status(msg string) {
	warn := strings.HasPrefix(msg, "MarkdownTOC Error")
	err := h.client.ExecLua(`
local msg, warn = ...
vim.notify(msg, warn and vim.log.levels.WARN or vim.log.levels.INFO)
`, nil, msg, warn)
	if err != nil {
		h.logger.Warn("notify failed", "msg", msg, "err", err)
	}
}

func joinLines(lines [][]byte) string {
	if len(lines) == 1 && len(lines[0]) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range lines {
		b.Write(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// lineEdit converts an edit whose region starts and ends on line starts and
// whose text is whole lines into nvim_buf_set_lines arguments.
func lineEdit(text string, edit toc.Edit) (first, last int, lines []string, ok bool) {
	srow, scol := document.Position(text, edit.Region.Begin)
	erow, ecol := document.Position(text, edit.Region.End)
	if scol != 0 || ecol != 0 {
		return 0, 0, nil, false
	}
	if edit.Text != "" && !strings.HasSuffix(edit.Text, "\n") {
		return 0, 0, nil, false
	}
	lines = []string{}
	if edit.Text != "" {
		lines = strings.Split(strings.TrimSuffix(edit.Text, "\n"), "\n")
	}
	// An empty buffer still holds one empty line.
	if text == "" {
		erow = 1
	}
	return srow, erow, lines, true
}
