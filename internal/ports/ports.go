// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the password generator core and
// external adapters (infrastructure). The core depends on these abstractions,
// never on a concrete storage engine, clipboard tool or UI framework.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., KeyValueStore, Clipboard)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/passgen/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.passgen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore persists opaque values under string keys.
// Get reports found=false with a nil error when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Location() string
	Close() error
}

// Clipboard writes text to a clipboard service.
// Copy returns an error wrapping domain.ErrClipboardUnavailable when the
// service cannot be reached.
type Clipboard interface {
	Name() string
	Enabled() bool
	Copy(ctx context.Context, text string) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
