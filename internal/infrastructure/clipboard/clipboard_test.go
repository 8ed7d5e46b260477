package clipboard

import (
	"bytes"
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen/internal/domain"
)

func TestOSC52WritesEscapeSequence(t *testing.T) {
	var buf bytes.Buffer
	clip := NewOSC52Writer(&buf, 1)
	clip.isTerminal = func(int) bool { return true }

	require.NoError(t, clip.Copy(context.Background(), "hunter2!"))
	assert.Equal(t, "\x1b]52;c;aHVudGVyMiE=\a", buf.String())
}

func TestOSC52RequiresTerminal(t *testing.T) {
	var buf bytes.Buffer
	clip := NewOSC52Writer(&buf, 1)
	clip.isTerminal = func(int) bool { return false }

	err := clip.Copy(context.Background(), "x")
	assert.True(t, errors.Is(err, domain.ErrClipboardUnavailable))
	assert.Zero(t, buf.Len())
}

func TestSystemPicksLinuxTool(t *testing.T) {
	var gotName string
	var gotArgs []string
	var gotInput []byte
	clip := &System{
		goos: "linux",
		lookPath: func(name string) (string, error) {
			if name == "xclip" {
				return "/usr/bin/xclip", nil
			}
			return "", errors.New("not found")
		},
		run: func(_ context.Context, name string, args []string, stdin []byte) error {
			gotName, gotArgs, gotInput = name, args, stdin
			return nil
		},
	}

	require.NoError(t, clip.Copy(context.Background(), "s3cret"))
	assert.Equal(t, "xclip", gotName)
	assert.Equal(t, []string{"-selection", "clipboard"}, gotArgs)
	assert.Equal(t, "s3cret", string(gotInput))
}

func TestSystemUnavailable(t *testing.T) {
	noTools := &System{
		goos:     "linux",
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
		run:      func(context.Context, string, []string, []byte) error { return nil },
	}
	assert.True(t, errors.Is(noTools.Copy(context.Background(), "x"), domain.ErrClipboardUnavailable))

	unsupported := &System{goos: "plan9"}
	assert.False(t, unsupported.Enabled())
	assert.True(t, errors.Is(unsupported.Copy(context.Background(), "x"), domain.ErrClipboardUnavailable))

	failing := &System{
		goos: "darwin",
		run: func(context.Context, string, []string, []byte) error {
			return errors.New("exit status 1")
		},
	}
	assert.True(t, errors.Is(failing.Copy(context.Background(), "x"), domain.ErrClipboardUnavailable))
}
