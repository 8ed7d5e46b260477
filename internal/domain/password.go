package domain

import "unicode/utf8"

// Password is a generated password. Its length is counted in characters.
type Password string

// Len returns the number of characters in the password.
func (p Password) Len() int {
	return utf8.RuneCountInString(string(p))
}

func (p Password) String() string {
	return string(p)
}

// StrengthTier labels a length range for display.
type StrengthTier struct {
	MinLength    int    `yaml:"min" mapstructure:"min" validate:"gte=1"`
	MaxLength    int    `yaml:"max" mapstructure:"max" validate:"gtefield=MinLength"`
	Label        string `yaml:"label" mapstructure:"label" validate:"required"`
	VisualWeight int    `yaml:"weight" mapstructure:"weight" validate:"gte=1,lte=4"`
}

// Contains reports whether length falls inside the tier's inclusive range.
func (t StrengthTier) Contains(length int) bool {
	return length >= t.MinLength && length <= t.MaxLength
}
