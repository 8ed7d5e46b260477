package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/doeshing/passgen/internal/domain"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate ensures config structure is consistent: struct constraints first,
// then tiers partitioning the length bounds and class references.
func Validate(cfg domain.Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		return invalid(describeStructErrors(err))
	}
	if err := validateTiers(cfg); err != nil {
		return err
	}
	if err := validateClasses(cfg); err != nil {
		return err
	}
	return nil
}

func validateTiers(cfg domain.Config) error {
	tiers := make([]domain.StrengthTier, len(cfg.StrengthTiers))
	copy(tiers, cfg.StrengthTiers)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].MinLength < tiers[j].MinLength })

	next := cfg.Length.Min
	for _, tier := range tiers {
		switch {
		case tier.MinLength > next:
			return invalid(fmt.Sprintf("strength tiers leave lengths %d-%d unclassified", next, tier.MinLength-1))
		case tier.MinLength < next:
			return invalid(fmt.Sprintf("strength tier %q overlaps length %d", tier.Label, tier.MinLength))
		}
		next = tier.MaxLength + 1
	}
	if next <= cfg.Length.Max {
		return invalid(fmt.Sprintf("strength tiers leave lengths %d-%d unclassified", next, cfg.Length.Max))
	}
	if next-1 > cfg.Length.Max {
		return invalid(fmt.Sprintf("strength tiers extend past length.max %d", cfg.Length.Max))
	}
	return nil
}

func validateClasses(cfg domain.Config) error {
	for class, chars := range cfg.Charsets {
		if strings.TrimSpace(string(class)) != string(class) || class == "" {
			return invalid(fmt.Sprintf("charset name %q must not have surrounding spaces", class))
		}
		if chars == "" {
			return invalid(fmt.Sprintf("charset %q is empty", class))
		}
	}
	for _, class := range cfg.Defaults.Classes {
		if !cfg.HasClass(class) {
			return invalid(fmt.Sprintf("defaults.classes references unknown charset %q", class))
		}
	}
	return nil
}

func describeStructErrors(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

func invalid(detail string) error {
	return errors.WithHint(
		errors.Wrap(domain.ErrInvalidConfig, detail),
		"edit the config file or run 'passgen config init --force'",
	)
}
