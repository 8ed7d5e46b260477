// Package history keeps the bounded, most-recent-first list of generated
// passwords and persists it through a key-value store.
package history

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/pkg/logger"
	"github.com/doeshing/passgen/internal/ports"
)

// Manager owns the in-memory history sequence and mirrors every mutation to
// the store.
type Manager struct {
	store  ports.KeyValueStore
	key    string
	logger ports.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries []domain.HistoryEntry
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// NewManager builds a Manager backed by store.
func NewManager(store ports.KeyValueStore, log ports.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	m := &Manager{
		store:  store,
		key:    domain.HistoryStorageKey,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the persisted sequence. An absent, unreadable or malformed
// record yields an empty history; the failure is logged, never returned.
func (m *Manager) Load(ctx context.Context) []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.read(ctx)
	if err != nil {
		m.logger.Debug("history discarded", map[string]interface{}{
			"key":   m.key,
			"error": err.Error(),
		})
		entries = nil
	}
	m.entries = entries
	return m.snapshot()
}

func (m *Manager) read(ctx context.Context) ([]domain.HistoryEntry, error) {
	if m.store == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, domain.DefaultStorageTimeout)
	defer cancel()
	raw, found, err := m.store.Get(ctx, m.key)
	if err != nil {
		return nil, errors.Wrap(err, "read history")
	}
	if !found || len(raw) == 0 {
		return nil, nil
	}
	var stored []domain.HistoryEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode history"), domain.ErrHistoryLoadCorrupt)
	}
	entries := make([]domain.HistoryEntry, 0, len(stored))
	for _, entry := range stored {
		if entry.Password == "" {
			continue
		}
		entries = append(entries, entry)
		if len(entries) == domain.HistoryCapacity {
			break
		}
	}
	return entries, nil
}

// Record prepends password, evicting the oldest entry beyond capacity, and
// persists the result. The in-memory sequence is updated even when the
// write fails.
func (m *Manager) Record(ctx context.Context, password domain.Password) (domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := domain.HistoryEntry{
		ID:          uuid.NewString(),
		Password:    password,
		GeneratedAt: m.now().UTC(),
	}
	next := make([]domain.HistoryEntry, 0, domain.HistoryCapacity)
	next = append(next, entry)
	for _, old := range m.entries {
		if len(next) == domain.HistoryCapacity {
			break
		}
		next = append(next, old)
	}
	m.entries = next

	return entry, m.persist(ctx)
}

// Clear empties the history and persists the empty state.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return m.persist(ctx)
}

// Entries returns a copy of the current sequence, most recent first.
func (m *Manager) Entries() []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Location describes where history is persisted.
func (m *Manager) Location() string {
	if m.store == nil {
		return "memory"
	}
	return m.store.Location()
}

func (m *Manager) persist(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	entries := m.entries
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "encode history")
	}
	ctx, cancel := context.WithTimeout(ctx, domain.DefaultStorageTimeout)
	defer cancel()
	if err := m.store.Set(ctx, m.key, raw); err != nil {
		m.logger.Warn("history not persisted", map[string]interface{}{
			"key":   m.key,
			"store": m.store.Location(),
			"error": err.Error(),
		})
		return errors.Wrap(err, "persist history")
	}
	return nil
}

func (m *Manager) snapshot() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
