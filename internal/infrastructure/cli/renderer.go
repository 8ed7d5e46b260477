package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/passgen/internal/application/session"
	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/infrastructure/render"
)

// RenderPasswords prints one password per line so output can be piped.
func RenderPasswords(out io.Writer, passwords []domain.Password) {
	for _, pw := range passwords {
		fmt.Fprintln(out, pw)
	}
}

// RenderStrength prints the strength meter for length.
func RenderStrength(out io.Writer, length int, tier domain.StrengthTier, maxWeight int) {
	fmt.Fprintf(out, "Strength: %s (%d characters)\n", render.Strength(tier, maxWeight), length)
}

// RenderCopyOutcome reports where the password went.
func RenderCopyOutcome(out io.Writer, outcome session.CopyOutcome) {
	switch outcome {
	case session.CopiedPrimary:
		fmt.Fprintln(out, "Copied to clipboard.")
	case session.CopiedFallback:
		fmt.Fprintln(out, "Copied via terminal clipboard (OSC 52).")
	case session.CopyNothing:
		fmt.Fprintln(out, "Nothing to copy.")
	case session.CopyFailed:
		fmt.Fprintln(out, "Clipboard unavailable.")
	}
}

// RenderNotice prints a single line.
func RenderNotice(out io.Writer, msg string) {
	fmt.Fprintln(out, msg)
}
