// Package render turns strength tiers into terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/passgen/internal/domain"
)

// Palette shared by the CLI and the TUI.
var (
	ColorWeak       = lipgloss.Color("#ff0000")
	ColorMedium     = lipgloss.Color("#ffaa00")
	ColorStrong     = lipgloss.Color("#0099ff")
	ColorVeryStrong = lipgloss.Color("#00ff00")
	ColorMuted      = lipgloss.Color("#666666")
	ColorPrimary    = lipgloss.Color("#00ffff")
)

// MeterSegments is the number of cells drawn by Meter.
const MeterSegments = 4

// WeightColor maps a visual weight (1..4) to a color. Weights outside that
// range fall back to muted.
func WeightColor(weight int) lipgloss.Color {
	switch weight {
	case 1:
		return ColorWeak
	case 2:
		return ColorMedium
	case 3:
		return ColorStrong
	case 4:
		return ColorVeryStrong
	default:
		return ColorMuted
	}
}

// TierStyle is the text style for a tier label.
func TierStyle(tier domain.StrengthTier) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(WeightColor(tier.VisualWeight))
}

// Meter draws weight filled cells out of max.
func Meter(tier domain.StrengthTier, max int) string {
	if max <= 0 {
		max = MeterSegments
	}
	filled := tier.VisualWeight
	if filled < 0 {
		filled = 0
	}
	if filled > max {
		filled = max
	}
	on := lipgloss.NewStyle().Foreground(WeightColor(tier.VisualWeight))
	off := lipgloss.NewStyle().Foreground(ColorMuted)
	return on.Render(strings.Repeat("█", filled)) + off.Render(strings.Repeat("░", max-filled))
}

// Strength renders "<meter> <label>".
func Strength(tier domain.StrengthTier, max int) string {
	return Meter(tier, max) + " " + TierStyle(tier).Render(tier.Label)
}
