package clipboard

import (
	"context"
	"encoding/base64"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/ports"
)

// OSC52 asks the terminal emulator to set the clipboard by writing an
// OSC 52 escape sequence. It only works when out is a terminal.
type OSC52 struct {
	out        io.Writer
	fd         int
	isTerminal func(fd int) bool
}

// NewOSC52 writes to stdout.
func NewOSC52() *OSC52 {
	return NewOSC52Writer(os.Stdout, int(os.Stdout.Fd()))
}

// NewOSC52Writer writes the sequence to out; fd is checked with term.IsTerminal.
func NewOSC52Writer(out io.Writer, fd int) *OSC52 {
	return &OSC52{out: out, fd: fd, isTerminal: term.IsTerminal}
}

func (o *OSC52) Name() string {
	return "osc52"
}

func (o *OSC52) Enabled() bool {
	return o.out != nil && o.isTerminal(o.fd)
}

// Copy writes ESC ] 52 ; c ; <base64> BEL.
func (o *OSC52) Copy(_ context.Context, text string) error {
	if !o.Enabled() {
		return errors.Wrap(domain.ErrClipboardUnavailable, "output is not a terminal")
	}
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	if _, err := io.WriteString(o.out, seq); err != nil {
		return errors.Mark(errors.Wrap(err, "write osc52 sequence"), domain.ErrClipboardUnavailable)
	}
	return nil
}

var _ ports.Clipboard = (*OSC52)(nil)
