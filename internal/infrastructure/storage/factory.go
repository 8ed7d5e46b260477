// Package storage provides key-value adapters for persisting history.
package storage

import (
	"github.com/cockroachdb/errors"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/pkg/filesystem"
	"github.com/doeshing/passgen/internal/ports"
)

// Open builds the store selected by settings. A SQLite database that cannot
// be opened falls back to the default file store.
func Open(settings domain.HistorySettings, log ports.Logger) (ports.KeyValueStore, error) {
	if !settings.Enabled {
		return NewMemoryStore(), nil
	}
	path := filesystem.ExpandPath(settings.Path)
	switch settings.Backend {
	case "", domain.BackendFile:
		return NewFileStore(path), nil
	case domain.BackendSQLite:
		store, err := NewSQLiteStore(path)
		if err != nil {
			fallback := NewFileStore("")
			log.Warn("sqlite unavailable, using file store", map[string]interface{}{
				"path":     path,
				"fallback": fallback.Location(),
				"error":    err.Error(),
			})
			return fallback, nil
		}
		return store, nil
	case domain.BackendRedis:
		return NewRedisStore(settings.RedisURL)
	case domain.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.WithHint(
			errors.Newf("unknown history backend %q", settings.Backend),
			"use one of: file, sqlite, redis, memory",
		)
	}
}
