package editor

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

//go:embed mdtoc.lua
var pluginLua []byte

// PluginDir returns the Neovim plugin directory the loader is installed to.
// Respects XDG_CONFIG_HOME and NVIM_APPNAME, defaults to ~/.config/nvim/plugin.
func PluginDir() (string, error) {
	app := os.Getenv("NVIM_APPNAME")
	if app == "" {
		app = "nvim"
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, app, "plugin"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("plugin dir: %w", err)
	}
	return filepath.Join(home, ".config", app, "plugin"), nil
}

// InstallPlugin writes the loader script into the Neovim plugin directory.
// An existing file is left alone unless force is set. It reports the path and
// whether the file was written.
func InstallPlugin(force bool) (string, bool, error) {
	dir, err := PluginDir()
	if err != nil {
		return "", false, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", false, fmt.Errorf("create plugin dir: %w", err)
	}

	path := filepath.Join(dir, "mdtoc.lua")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, false, nil
		}
	}
	if err := os.WriteFile(path, pluginLua, 0644); err != nil {
		return "", false, fmt.Errorf("write mdtoc.lua: %w", err)
	}
	return path, true, nil
}

// CheckNvimVersion verifies that nvim is installed and >= 0.7, the first
// release with nvim_create_user_command and nvim_create_autocmd.
func CheckNvimVersion() error {
	out, err := exec.Command("nvim", "--version").Output()
	if err != nil {
		return fmt.Errorf("nvim not found: %w", err)
	}
	return checkVersionOutput(string(out))
}

func checkVersionOutput(out string) error {
	// First line is like "NVIM v0.10.2"
	line, _, _ := strings.Cut(out, "\n")
	version := strings.TrimPrefix(strings.TrimSpace(line), "NVIM v")

	major, minor, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("could not parse nvim version %q: %w", version, err)
	}
	if major == 0 && minor < 7 {
		return fmt.Errorf("nvim >= 0.7 required, found %d.%d", major, minor)
	}
	return nil
}

func parseSemver(s string) (int, int, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid version: %s", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}
