package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen/assets"
	"github.com/doeshing/passgen/internal/domain"
)

func TestLoadSeedsDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, assets.DefaultConfigYAML, raw)

	assert.Equal(t, domain.LengthBounds{Min: 8, Max: 32, Default: 15}, cfg.Length)
	assert.Equal(t, "@#*&_-!$%+=", cfg.Charsets[domain.ClassSymbols])
	require.Len(t, cfg.StrengthTiers, 4)
	assert.Equal(t, domain.StrengthTier{MinLength: 12, MaxLength: 15, Label: "Medium", VisualWeight: 2}, cfg.StrengthTiers[1])
	assert.Equal(t, domain.ClassOrder, cfg.Defaults.Classes)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, domain.BackendFile, cfg.History.Backend)
	assert.Equal(t, domain.HistoryStorageKey, cfg.History.Key)
	assert.True(t, cfg.Clipboard.OSC52Fallback)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("PASSGEN_HISTORY_BACKEND", "memory")
	t.Setenv("PASSGEN_LENGTH_DEFAULT", "20")
	t.Setenv("PASSGEN_CLIPBOARD_ENABLED", "false")

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BackendMemory, cfg.History.Backend)
	assert.Equal(t, 20, cfg.Length.Default)
	assert.False(t, cfg.Clipboard.Enabled)
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := []byte("length:\n  min: 10\n  max: 20\nhistory:\n  enabled: false\n")
	require.NoError(t, os.WriteFile(path, partial, 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Length.Default)
	assert.Len(t, cfg.Charsets, 4)
	assert.Len(t, cfg.StrengthTiers, 4)
	assert.Equal(t, domain.ClassOrder, cfg.Defaults.Classes)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, domain.HistoryStorageKey, cfg.History.Key)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: [unterminated"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestPathResolution(t *testing.T) {
	t.Setenv("PASSGEN_CONFIG", "/etc/passgen/custom.yaml")
	assert.Equal(t, "/etc/passgen/custom.yaml", NewFileLoader("").Path())
	assert.Equal(t, "/tmp/explicit.yaml", NewFileLoader("/tmp/explicit.yaml").Path())
}

func TestBackupAndReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	custom := strings.Replace(string(assets.DefaultConfigYAML), "default: 15", "default: 24", 1)
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	reloaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 24, reloaded.Length.Default)

	backup, err := loader.Backup()
	require.NoError(t, err)
	assert.FileExists(t, backup)

	require.NoError(t, loader.Reset())
	reset, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, reset.Length.Default)
}

func TestClassNamesAreCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("charsets:\n  Brackets: \"[]{}\"\n  lowercase: \"abc\"\ndefaults:\n  classes: [Brackets, Lowercase]\n")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]{}", cfg.Charsets["brackets"])
	assert.Equal(t, []domain.CharacterClass{"brackets", domain.ClassLowercase}, cfg.Defaults.Classes)
	assert.True(t, cfg.HasClass(cfg.Defaults.Classes[0]))
}
