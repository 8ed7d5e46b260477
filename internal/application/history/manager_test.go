package history

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen/internal/domain"
)

func TestRecordKeepsFiveMostRecent(t *testing.T) {
	store := newStubStore()
	clock := fixedClock(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	mgr := NewManager(store, nil, WithClock(clock.Now))
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		_, err := mgr.Record(ctx, domain.Password(fmt.Sprintf("pw-%d", i)))
		require.NoError(t, err)
		require.LessOrEqual(t, len(mgr.Entries()), domain.HistoryCapacity)
	}

	entries := mgr.Entries()
	require.Len(t, entries, 5)
	for i, want := range []string{"pw-8", "pw-7", "pw-6", "pw-5", "pw-4"} {
		assert.Equal(t, want, entries[i].Password.String())
		assert.NotEmpty(t, entries[i].ID)
	}
	assert.True(t, entries[0].GeneratedAt.After(entries[4].GeneratedAt))
	assert.Equal(t, 8, store.sets, "every mutation is persisted")

	fresh := NewManager(store, nil)
	reloaded := fresh.Load(ctx)
	require.Len(t, reloaded, 5)
	assert.Equal(t, "pw-8", reloaded[0].Password.String())
}

func TestClearThenLoadIsEmpty(t *testing.T) {
	store := newStubStore()
	ctx := context.Background()
	mgr := NewManager(store, nil)

	_, err := mgr.Record(ctx, "secret-one")
	require.NoError(t, err)
	require.NoError(t, mgr.Clear(ctx))
	assert.Empty(t, mgr.Entries())

	fresh := NewManager(store, nil)
	assert.Empty(t, fresh.Load(ctx))
	assert.JSONEq(t, `[]`, string(store.data[domain.HistoryStorageKey]))
}

func TestLoadSwallowsCorruptRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"password":"x"}`},
		{"wrong field types", `[{"password": 12, "generatedAt": "yesterday"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStubStore()
			store.data[domain.HistoryStorageKey] = []byte(tt.raw)

			mgr := NewManager(store, nil)
			assert.Empty(t, mgr.Load(context.Background()))

			_, err := mgr.read(context.Background())
			assert.True(t, errors.Is(err, domain.ErrHistoryLoadCorrupt))
		})
	}
}

func TestLoadAbsentAndStoreFailure(t *testing.T) {
	store := newStubStore()
	assert.Empty(t, NewManager(store, nil).Load(context.Background()))

	store.getErr = errors.New("connection refused")
	assert.Empty(t, NewManager(store, nil).Load(context.Background()))
}

func TestLoadTruncatesAndDropsBlankEntries(t *testing.T) {
	stored := []domain.HistoryEntry{{Password: ""}}
	for i := 0; i < 7; i++ {
		stored = append(stored, domain.HistoryEntry{Password: domain.Password(fmt.Sprintf("p%d", i))})
	}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)

	store := newStubStore()
	store.data[domain.HistoryStorageKey] = raw

	entries := NewManager(store, nil).Load(context.Background())
	require.Len(t, entries, 5)
	assert.Equal(t, domain.Password("p0"), entries[0].Password)
	assert.Equal(t, domain.Password("p4"), entries[4].Password)
}

func TestRecordPersistFailureKeepsMemoryState(t *testing.T) {
	store := newStubStore()
	store.setErr = errors.New("read-only filesystem")
	mgr := NewManager(store, nil)

	entry, err := mgr.Record(context.Background(), "abc12345")
	require.Error(t, err)
	assert.Equal(t, domain.Password("abc12345"), entry.Password)
	assert.Len(t, mgr.Entries(), 1)
}

func TestCustomKey(t *testing.T) {
	store := newStubStore()
	mgr := NewManager(store, nil, WithKey("team:history"))
	_, err := mgr.Record(context.Background(), "abcdefgh")
	require.NoError(t, err)
	assert.Contains(t, store.data, "team:history")
	assert.Equal(t, "stub", mgr.Location())
}

type stubStore struct {
	data   map[string][]byte
	sets   int
	getErr error
	setErr error
}

func newStubStore() *stubStore {
	return &stubStore{data: map[string][]byte{}}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubStore) Set(_ context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.data[key] = value
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func (s *stubStore) Location() string { return "stub" }
func (s *stubStore) Close() error     { return nil }

type tickingClock struct {
	t time.Time
}

func fixedClock(start time.Time) *tickingClock {
	return &tickingClock{t: start}
}

func (c *tickingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}
