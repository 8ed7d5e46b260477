package storage

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/pkg/filesystem"
	"github.com/doeshing/passgen/internal/ports"
)

// FileStore keeps one file per key under a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store rooted at dir, defaulting to ~/.passgen/store.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = filepath.Join(filesystem.AppDir(), "store")
	}
	return &FileStore{dir: dir}
}

// Get implements ports.KeyValueStore.
func (f *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read %s", key)
	}
	return data, true, nil
}

// Set writes value atomically via a temp file and rename.
func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(f.dir, domain.DirectoryPermissions); err != nil {
		return errors.Wrap(err, "create store directory")
	}
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Chmod(domain.SecureFilePermissions); err != nil {
		tmp.Close()
		return errors.Wrap(err, "chmod temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), f.pathFor(key)); err != nil {
		return errors.Wrapf(err, "replace %s", key)
	}
	return nil
}

// Delete removes the key's file.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Location returns the backing directory.
func (f *FileStore) Location() string {
	return f.dir
}

// Close is a no-op.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) pathFor(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

var _ ports.KeyValueStore = (*FileStore)(nil)
