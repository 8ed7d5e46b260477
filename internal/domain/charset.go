package domain

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// CharacterClass names a subset of characters that can be toggled on or off.
type CharacterClass string

const (
	ClassUppercase CharacterClass = "uppercase"
	ClassLowercase CharacterClass = "lowercase"
	ClassNumbers   CharacterClass = "numbers"
	ClassSymbols   CharacterClass = "symbols"
)

// ClassOrder is the stable order in which enabled classes are pooled.
var ClassOrder = []CharacterClass{ClassUppercase, ClassLowercase, ClassNumbers, ClassSymbols}

// ParseCharacterClass normalizes user input such as "Upper" or "digits".
func ParseCharacterClass(raw string) (CharacterClass, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "uppercase", "upper", "u":
		return ClassUppercase, nil
	case "lowercase", "lower", "l":
		return ClassLowercase, nil
	case "numbers", "number", "digits", "n":
		return ClassNumbers, nil
	case "symbols", "symbol", "special", "s":
		return ClassSymbols, nil
	case "":
		return "", errors.Wrap(ErrUnknownCharset, "empty class name")
	default:
		return CharacterClass(strings.ToLower(strings.TrimSpace(raw))), nil
	}
}

// GenerationOptions is the set of enabled character classes.
type GenerationOptions struct {
	enabled map[CharacterClass]bool
}

// NewGenerationOptions enables exactly the given classes.
func NewGenerationOptions(classes ...CharacterClass) GenerationOptions {
	opts := GenerationOptions{enabled: make(map[CharacterClass]bool, len(classes))}
	for _, class := range classes {
		opts.enabled[class] = true
	}
	return opts
}

// With returns a copy with class switched on or off.
func (o GenerationOptions) With(class CharacterClass, enabled bool) GenerationOptions {
	next := GenerationOptions{enabled: make(map[CharacterClass]bool, len(o.enabled)+1)}
	for k, v := range o.enabled {
		if v {
			next.enabled[k] = true
		}
	}
	if enabled {
		next.enabled[class] = true
	} else {
		delete(next.enabled, class)
	}
	return next
}

// Has reports whether class is enabled.
func (o GenerationOptions) Has(class CharacterClass) bool {
	return o.enabled[class]
}

// IsEmpty reports whether no class is enabled.
func (o GenerationOptions) IsEmpty() bool {
	return len(o.Classes()) == 0
}

// Classes lists enabled classes: the built-in ones in ClassOrder, then any
// custom classes alphabetically.
func (o GenerationOptions) Classes() []CharacterClass {
	return orderClasses(o.enabled)
}

func orderClasses(set map[CharacterClass]bool) []CharacterClass {
	out := make([]CharacterClass, 0, len(set))
	seen := make(map[CharacterClass]bool, len(ClassOrder))
	for _, class := range ClassOrder {
		seen[class] = true
		if set[class] {
			out = append(out, class)
		}
	}
	var extra []CharacterClass
	for class, on := range set {
		if on && !seen[class] {
			extra = append(extra, class)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
