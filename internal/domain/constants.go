package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwx------)
	DirectoryPermissions = 0o700
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// History constants
const (
	// HistoryCapacity is the maximum number of remembered passwords
	HistoryCapacity = 5
	// HistoryStorageKey is the key the history sequence is stored under
	HistoryStorageKey = "passwordHistory"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Timeout and duration constants
const (
	// DefaultClipboardTimeout bounds a single clipboard write
	DefaultClipboardTimeout = 3 * time.Second
	// DefaultStorageTimeout bounds a single storage round-trip
	DefaultStorageTimeout = 5 * time.Second
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// ClockFormat is used when listing history entries
	ClockFormat = "15:04:05"
)
