package doctor

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/ports"
)

// Validator checks a loaded configuration.
type Validator func(domain.Config) error

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Validate       Validator
	Store          ports.KeyValueStore
	HistoryKey     string
	Clipboard      ports.Clipboard
	Fallback       ports.Clipboard
	Random         io.Reader
}

// Run executes checks and returns a report. The error is only set when the
// configuration cannot be loaded at all.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded %s", cfg.ConfigFormatVersion)))

	if s.Validate != nil {
		if err := s.Validate(cfg); err != nil {
			checks = append(checks, fail("Config values", err.Error()))
		} else {
			checks = append(checks, ok("Config values", fmt.Sprintf("%d classes, %d strength tiers", len(cfg.Charsets), len(cfg.StrengthTiers))))
		}
	}

	checks = append(checks, s.storageCheck(ctx, cfg))
	checks = append(checks, s.clipboardCheck())
	checks = append(checks, s.randomCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) storageCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.History.Enabled {
		return warn("History storage", "history disabled")
	}
	if s.Store == nil {
		return warn("History storage", "store not initialized")
	}
	key := s.HistoryKey
	if key == "" {
		key = domain.HistoryStorageKey
	}
	if _, _, err := s.Store.Get(ctx, key); err != nil {
		return fail("History storage", err.Error())
	}
	return ok("History storage", fmt.Sprintf("%s (%s)", cfg.History.Backend, s.Store.Location()))
}

func (s *Service) clipboardCheck() domain.HealthCheck {
	if s.Clipboard != nil && s.Clipboard.Enabled() {
		return ok("Clipboard", s.Clipboard.Name())
	}
	if s.Fallback != nil && s.Fallback.Enabled() {
		return warn("Clipboard", fmt.Sprintf("no clipboard tool, using %s", s.Fallback.Name()))
	}
	return warn("Clipboard", "no clipboard tool found; copy manually")
}

func (s *Service) randomCheck() domain.HealthCheck {
	src := s.Random
	if src == nil {
		src = rand.Reader
	}
	buf := make([]byte, 16)
	if _, err := io.ReadFull(src, buf); err != nil {
		return fail("Random source", err.Error())
	}
	return ok("Random source", "crypto/rand readable")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
