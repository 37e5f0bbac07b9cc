package editor

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/neovim/go-client/nvim"

	"github.com/pfassina/mdtoc/internal/command"
	"github.com/pfassina/mdtoc/internal/logging"
)

// RPC manages the Neovim RPC connection.
type RPC struct {
	client *nvim.Nvim
	logger *log.Logger
	served chan error
}

// ConnectRPC dials the Neovim socket (a unix socket path or host:port).
// It retries briefly since Neovim may not have the socket ready immediately.
func ConnectRPC(address string, logger *log.Logger) (*RPC, error) {
	network := "unix"
	if strings.Contains(address, ":") && !strings.Contains(address, "/") {
		network = "tcp"
	}

	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		conn, err = net.Dial(network, address)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to nvim socket: %w", err)
	}
	return newRPC(conn, conn, conn, logger)
}

// StdioRPC talks to the Neovim instance that started this process as an
// rpc job (jobstart with rpc = true).
func StdioRPC(stdin io.Reader, stdout io.WriteCloser, logger *log.Logger) (*RPC, error) {
	return newRPC(stdin, stdout, stdout, logger)
}

func newRPC(r io.Reader, w io.Writer, c io.Closer, logger *log.Logger) (*RPC, error) {
	logger = logging.OrDiscard(logger)
	client, err := nvim.New(r, w, c, func(format string, args ...interface{}) {
		logger.Debugf(format, args...)
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create nvim client: %w", err), c.Close())
	}

	rpc := &RPC{client: client, logger: logger, served: make(chan error, 1)}
	go func() {
		rpc.served <- client.Serve()
	}()
	return rpc, nil
}

// Wait blocks until Neovim closes the connection.
func (r *RPC) Wait() error {
	err := <-r.served
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Register installs the TOC commands and the pre-save hook in Neovim and
// routes them to runner.
//
//	:MarkdownTOC        insert a TOC at the cursor, or refresh the existing one
//	:MarkdownTOCUpdate  refresh the existing TOC only
//
// The BufWritePre hook uses rpcrequest so the refresh lands before the write.
func (r *RPC) Register(runner *command.Runner) error {
	if err := r.client.RegisterHandler("mdtoc:insert", func(buf int) error {
		h, err := r.bufferHost(buf)
		if err != nil {
			return err
		}
		_, err = runner.InsertOrRefresh(h)
		return err
	}); err != nil {
		return err
	}

	if err := r.client.RegisterHandler("mdtoc:update", func(buf int) error {
		h, err := r.bufferHost(buf)
		if err != nil {
			return err
		}
		_, err = runner.RefreshIfPresent(h)
		return err
	}); err != nil {
		return err
	}

	if err := r.client.RegisterHandler("mdtoc:presave", func(buf int, path string) error {
		if !command.IsMarkdownExt(path) {
			return nil
		}
		h, err := r.bufferHost(buf)
		if err != nil {
			return err
		}
		// A failed refresh must never block the write.
		if _, err := runner.PreSave(h, path); err != nil {
			r.logger.Warn("pre-save refresh failed", "path", path, "err", err)
		}
		return nil
	}); err != nil {
		return err
	}

	cid := r.client.ChannelID()
	lua := fmt.Sprintf(`
local chan = %d

vim.api.nvim_create_user_command('MarkdownTOC', function()
  vim.rpcrequest(chan, 'mdtoc:insert', vim.api.nvim_get_current_buf())
end, {desc = 'Insert or refresh the Markdown table of contents'})

vim.api.nvim_create_user_command('MarkdownTOCUpdate', function()
  vim.rpcrequest(chan, 'mdtoc:update', vim.api.nvim_get_current_buf())
end, {desc = 'Refresh the Markdown table of contents'})

vim.api.nvim_create_augroup('MdtocPreSave', {clear = true})
vim.api.nvim_create_autocmd('BufWritePre', {
  group = 'MdtocPreSave',
  callback = function(args)
    vim.rpcrequest(chan, 'mdtoc:presave', args.buf, vim.api.nvim_buf_get_name(args.buf))
  end,
})
`, cid)
	return r.client.ExecLua(lua, nil)
}

// bufferHost returns a host for buf; 0 selects the current buffer.
func (r *RPC) bufferHost(buf int) (*BufferHost, error) {
	b := nvim.Buffer(buf)
	if buf == 0 {
		cur, err := r.client.CurrentBuffer()
		if err != nil {
			return nil, fmt.Errorf("current buffer: %w", err)
		}
		b = cur
	}
	return NewBufferHost(r.client, b, r.logger), nil
}

// Close closes the RPC connection.
func (r *RPC) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
