package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// InBounds reports whether length satisfies the configured bounds.
func (c *Config) InBounds(length int) bool {
	return length >= c.Length.Min && length <= c.Length.Max
}

// ClampLength pins length to the configured bounds.
func (c *Config) ClampLength(length int) int {
	if length < c.Length.Min {
		return c.Length.Min
	}
	if length > c.Length.Max {
		return c.Length.Max
	}
	return length
}

// TierFor returns the first configured tier whose range contains length.
// There is no fallback tier.
func (c *Config) TierFor(length int) (StrengthTier, error) {
	for _, tier := range c.StrengthTiers {
		if tier.Contains(length) {
			return tier, nil
		}
	}
	return StrengthTier{}, errors.Wrapf(ErrNoStrengthTier, "length %d", length)
}

// MaxVisualWeight returns the largest weight across tiers, used to size meters.
func (c *Config) MaxVisualWeight() int {
	maxWeight := 0
	for _, tier := range c.StrengthTiers {
		if tier.VisualWeight > maxWeight {
			maxWeight = tier.VisualWeight
		}
	}
	return maxWeight
}

// ClassNames lists the configured classes, built-in ones first in ClassOrder.
func (c *Config) ClassNames() []CharacterClass {
	set := make(map[CharacterClass]bool, len(c.Charsets))
	for class := range c.Charsets {
		set[class] = true
	}
	return orderClasses(set)
}

// HasClass reports whether class has a configured character string.
func (c *Config) HasClass(class CharacterClass) bool {
	_, ok := c.Charsets[class]
	return ok
}

// DefaultOptions builds the initial toggle state.
func (c *Config) DefaultOptions() GenerationOptions {
	return NewGenerationOptions(c.Defaults.Classes...)
}

// Alphabet concatenates the character strings of the enabled classes in
// pooling order.
func (c *Config) Alphabet(opts GenerationOptions) (string, error) {
	classes := opts.Classes()
	if len(classes) == 0 {
		return "", ErrNoCharsetSelected
	}
	var b strings.Builder
	for _, class := range classes {
		chars, ok := c.Charsets[class]
		if !ok {
			return "", errors.Wrapf(ErrUnknownCharset, "%q", class)
		}
		b.WriteString(chars)
	}
	if b.Len() == 0 {
		return "", ErrNoCharsetSelected
	}
	return b.String(), nil
}
