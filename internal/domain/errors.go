package domain

import "github.com/cockroachdb/errors"

// Error kinds. Callers match them with errors.Is.
var (
	ErrNoCharsetSelected    = errors.New("no character set selected")
	ErrLengthOutOfRange     = errors.New("password length out of range")
	ErrUnknownCharset       = errors.New("unknown character set")
	ErrNoStrengthTier       = errors.New("no strength tier for length")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrHistoryLoadCorrupt   = errors.New("stored history is corrupt")
	ErrInvalidConfig        = errors.New("invalid configuration")
)
