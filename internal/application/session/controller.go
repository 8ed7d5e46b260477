// Package session holds the application state of one interactive or CLI
// session and routes user actions to the generator, history and clipboard.
package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/doeshing/passgen/internal/application/generator"
	"github.com/doeshing/passgen/internal/application/history"
	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/pkg/logger"
	"github.com/doeshing/passgen/internal/ports"
)

// State is a snapshot of everything the user can see or change.
type State struct {
	PasswordLength  int
	Options         domain.GenerationOptions
	CurrentPassword domain.Password
	History         []domain.HistoryEntry
}

// Generated is the result of a successful Generate call.
type Generated struct {
	Password domain.Password
	Strength domain.StrengthTier
	// HistoryErr is set when the password could not be persisted; the
	// password itself is still valid.
	HistoryErr error
}

// CopyOutcome reports how (or whether) the current password reached the
// clipboard.
type CopyOutcome string

const (
	CopyNothing    CopyOutcome = "nothing"
	CopiedPrimary  CopyOutcome = "copied"
	CopiedFallback CopyOutcome = "copied-fallback"
	CopyFailed     CopyOutcome = "failed"
)

// Controller owns State. All methods are safe for concurrent use.
type Controller struct {
	generator *generator.Service
	history   *history.Manager
	clipboard ports.Clipboard
	fallback  ports.Clipboard
	logger    ports.Logger

	// RecordHistory controls whether Generate appends to history.
	RecordHistory bool

	mu    sync.Mutex
	state State
}

// Deps groups the collaborators of a Controller.
type Deps struct {
	Generator *generator.Service
	History   *history.Manager
	Clipboard ports.Clipboard
	Fallback  ports.Clipboard
	Logger    ports.Logger
}

// NewController starts a session at the configured default length and
// toggles, with history loaded from storage.
func NewController(ctx context.Context, deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	cfg := deps.Generator.Config
	c := &Controller{
		generator:     deps.Generator,
		history:       deps.History,
		clipboard:     deps.Clipboard,
		fallback:      deps.Fallback,
		logger:        deps.Logger,
		RecordHistory: deps.History != nil,
		state: State{
			PasswordLength: cfg.ClampLength(cfg.Length.Default),
			Options:        cfg.DefaultOptions(),
		},
	}
	if deps.History != nil {
		c.state.History = deps.History.Load(ctx)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.History = append([]domain.HistoryEntry(nil), c.state.History...)
	return s
}

// Config exposes the generator configuration.
func (c *Controller) Config() domain.Config {
	return c.generator.Config
}

// SetLength sets an absolute length, clamped to the bounds.
func (c *Controller) SetLength(length int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PasswordLength = c.generator.ClampLength(length)
	return c.state.PasswordLength
}

// AdjustLength steps the length by delta; steps past a bound are ignored.
func (c *Controller) AdjustLength(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.PasswordLength = c.generator.AdjustLength(c.state.PasswordLength, delta)
	return c.state.PasswordLength
}

// SetClass toggles one character class.
func (c *Controller) SetClass(class domain.CharacterClass, enabled bool) error {
	if !c.generator.Config.HasClass(class) {
		return errors.Wrapf(domain.ErrUnknownCharset, "%q", class)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Options = c.state.Options.With(class, enabled)
	return nil
}

// ToggleClass flips one character class and returns its new state.
func (c *Controller) ToggleClass(class domain.CharacterClass) (bool, error) {
	if !c.generator.Config.HasClass(class) {
		return false, errors.Wrapf(domain.ErrUnknownCharset, "%q", class)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	enabled := !c.state.Options.Has(class)
	c.state.Options = c.state.Options.With(class, enabled)
	return enabled, nil
}

// Strength classifies the current length.
func (c *Controller) Strength() (domain.StrengthTier, error) {
	c.mu.Lock()
	length := c.state.PasswordLength
	c.mu.Unlock()
	return c.generator.Classify(length)
}

// Generate produces a password from the current state and records it. On a
// generation error the state is left untouched.
func (c *Controller) Generate(ctx context.Context) (Generated, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pw, err := c.generator.Generate(c.state.PasswordLength, c.state.Options)
	if err != nil {
		return Generated{}, err
	}
	tier, err := c.generator.Classify(c.state.PasswordLength)
	if err != nil {
		return Generated{}, err
	}
	c.state.CurrentPassword = pw
	out := Generated{Password: pw, Strength: tier}

	if c.RecordHistory && c.history != nil {
		if _, err := c.history.Record(ctx, pw); err != nil {
			out.HistoryErr = err
		}
		c.state.History = c.history.Entries()
	}
	return out, nil
}

// ClearHistory empties the history. The in-memory list is cleared even when
// persisting fails.
func (c *Controller) ClearHistory(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.History = nil
	if c.history == nil {
		return nil
	}
	return c.history.Clear(ctx)
}

// History returns the current history, most recent first.
func (c *Controller) History() []domain.HistoryEntry {
	return c.State().History
}

// Copy writes the current password to the clipboard, falling back to the
// secondary clipboard when the primary fails. The returned error wraps
// domain.ErrClipboardUnavailable when neither worked.
func (c *Controller) Copy(ctx context.Context) (CopyOutcome, error) {
	c.mu.Lock()
	pw := c.state.CurrentPassword
	c.mu.Unlock()
	return c.CopyText(ctx, pw.String())
}

// CopyText is Copy for an explicit value, e.g. a history entry.
func (c *Controller) CopyText(ctx context.Context, text string) (CopyOutcome, error) {
	if text == "" {
		return CopyNothing, nil
	}

	var primaryErr error
	if c.clipboard != nil && c.clipboard.Enabled() {
		primaryErr = c.clipboard.Copy(ctx, text)
		if primaryErr == nil {
			return CopiedPrimary, nil
		}
		c.logger.Debug("primary clipboard failed", map[string]interface{}{
			"clipboard": c.clipboard.Name(),
			"error":     primaryErr.Error(),
		})
	}

	if c.fallback != nil && c.fallback.Enabled() {
		if err := c.fallback.Copy(ctx, text); err == nil {
			return CopiedFallback, nil
		} else if primaryErr == nil {
			primaryErr = err
		}
	}

	if primaryErr == nil {
		primaryErr = domain.ErrClipboardUnavailable
	}
	return CopyFailed, errors.WithHint(
		errors.Mark(primaryErr, domain.ErrClipboardUnavailable),
		"select and copy the password manually",
	)
}
