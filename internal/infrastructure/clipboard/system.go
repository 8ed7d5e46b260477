// Package clipboard implements ports.Clipboard with platform tools and a
// terminal escape-sequence fallback.
package clipboard

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"

	"github.com/cockroachdb/errors"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/ports"
)

// System copies text through pbcopy, xclip, wl-copy or clip.exe.
type System struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args []string, stdin []byte) error
}

// NewSystem builds the clipboard helper for the running platform.
func NewSystem() *System {
	return &System{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

func (c *System) Name() string {
	return "system"
}

func (c *System) Enabled() bool {
	switch c.goos {
	case "darwin", "linux", "windows":
		return true
	default:
		return false
	}
}

// Copy copies text to the system clipboard.
func (c *System) Copy(ctx context.Context, text string) error {
	if !c.Enabled() {
		return errors.Wrapf(domain.ErrClipboardUnavailable, "not supported on %s", c.goos)
	}
	name, args, err := c.command()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, domain.DefaultClipboardTimeout)
	defer cancel()
	if err := c.run(ctx, name, args, []byte(text)); err != nil {
		return errors.Mark(errors.Wrapf(err, "%s failed", name), domain.ErrClipboardUnavailable)
	}
	return nil
}

func (c *System) command() (string, []string, error) {
	switch c.goos {
	case "darwin":
		return "pbcopy", nil, nil
	case "windows":
		return "clip.exe", nil, nil
	default: // linux
		if _, err := c.lookPath("wl-copy"); err == nil {
			return "wl-copy", nil, nil
		}
		if _, err := c.lookPath("xclip"); err == nil {
			return "xclip", []string{"-selection", "clipboard"}, nil
		}
		if _, err := c.lookPath("xsel"); err == nil {
			return "xsel", []string{"--clipboard", "--input"}, nil
		}
		return "", nil, errors.WithHint(
			errors.Wrap(domain.ErrClipboardUnavailable, "clipboard utilities not found"),
			"install wl-clipboard, xclip or xsel",
		)
	}
}

func runCommand(ctx context.Context, name string, args []string, stdin []byte) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	return cmd.Run()
}

var _ ports.Clipboard = (*System)(nil)
