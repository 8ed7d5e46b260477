package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/pkg/logger"
	"github.com/doeshing/passgen/internal/ports"
)

func exerciseStore(t *testing.T, store ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, domain.HistoryStorageKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, domain.HistoryStorageKey, []byte(`[{"password":"a"}]`)))
	require.NoError(t, store.Set(ctx, domain.HistoryStorageKey, []byte(`[]`)))

	value, found, err := store.Get(ctx, domain.HistoryStorageKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(value))

	require.NoError(t, store.Delete(ctx, domain.HistoryStorageKey))
	require.NoError(t, store.Delete(ctx, domain.HistoryStorageKey))
	_, found, err = store.Get(ctx, domain.HistoryStorageKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	store := NewFileStore(dir)
	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), "team/history", []byte("x")))
	info, err := os.Stat(filepath.Join(dir, "team%2Fhistory.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
	assert.Equal(t, dir, store.Location())
}

func TestFileStoreSetReportsReplaceFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	store := NewFileStore(dir)
	blocker := filepath.Join(dir, "history.json")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "child"), 0o700))

	err := store.Set(context.Background(), "history", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replace history")

	leftovers, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passgen.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), "k", []byte("persisted")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	value, found, err := reopened.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "persisted", string(value))
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("PASSGEN_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PASSGEN_TEST_REDIS_URL not set")
	}
	store, err := NewRedisStore(url)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Ping(context.Background()))
	exerciseStore(t, store)
}

func TestNewRedisStoreRejectsBadURL(t *testing.T) {
	_, err := NewRedisStore("http://not-redis")
	assert.Error(t, err)
}

func TestNewRedisStoreUsesURLAddress(t *testing.T) {
	store, err := NewRedisStore("redis://cache.internal:6380/2")
	require.NoError(t, err)
	defer store.Close()
	assert.Contains(t, store.Location(), "cache.internal:6380")
}

func TestOpenSelectsBackend(t *testing.T) {
	log := logger.NewNop()
	dir := t.TempDir()

	tests := []struct {
		name     string
		settings domain.HistorySettings
		want     interface{}
		wantErr  bool
	}{
		{"disabled", domain.HistorySettings{Enabled: false, Backend: domain.BackendFile}, &MemoryStore{}, false},
		{"default file", domain.HistorySettings{Enabled: true, Path: dir}, &FileStore{}, false},
		{"memory", domain.HistorySettings{Enabled: true, Backend: domain.BackendMemory}, &MemoryStore{}, false},
		{"sqlite", domain.HistorySettings{Enabled: true, Backend: domain.BackendSQLite, Path: filepath.Join(dir, "h.db")}, &SQLiteStore{}, false},
		{"redis", domain.HistorySettings{Enabled: true, Backend: domain.BackendRedis, RedisURL: "redis://localhost:6379/0"}, &RedisStore{}, false},
		{"unknown", domain.HistorySettings{Enabled: true, Backend: "etcd"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.settings, log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}
}
