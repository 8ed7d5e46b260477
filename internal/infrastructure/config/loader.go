package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/passgen/assets"
	"github.com/doeshing/passgen/internal/domain"
	"github.com/doeshing/passgen/internal/pkg/filesystem"
	"github.com/doeshing/passgen/internal/ports"
)

// EnvPrefix namespaces environment overrides, e.g. PASSGEN_HISTORY_BACKEND.
const EnvPrefix = "PASSGEN"

// FileLoader loads YAML configuration from ~/.passgen/config.yaml (overridable via PASSGEN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded from the
// embedded defaults; scalar keys may be overridden from the environment.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, cerr.Wrapf(err, "stat %s", path)
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, cerr.Wrap(err, "write default config")
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return domain.Config{}, cerr.WithHint(
			cerr.Wrapf(err, "read %s", path),
			"fix the YAML or run 'passgen config init --force' to restore defaults",
		)
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.Config{}, cerr.Wrapf(err, "decode %s", path)
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvPrefix + "_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

// Backup copies the current file next to itself with a timestamp suffix.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	dest := path + ".bak." + time.Now().Format("20060102150405")
	if err := os.WriteFile(dest, raw, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return dest, nil
}

// Reset replaces the file with the embedded defaults.
func (l *FileLoader) Reset() error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// Default parses the embedded default configuration.
func Default() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		panic("embedded default config is invalid: " + err.Error())
	}
	return cfg
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := Default()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.Length == (domain.LengthBounds{}) {
		cfg.Length = def.Length
	}
	if cfg.Length.Default == 0 {
		cfg.Length.Default = cfg.Length.Min
	}
	if len(cfg.Charsets) == 0 {
		cfg.Charsets = def.Charsets
	}
	if len(cfg.StrengthTiers) == 0 {
		cfg.StrengthTiers = def.StrengthTiers
	}
	// viper lowercases map keys, so class names are case-insensitive.
	for i, class := range cfg.Defaults.Classes {
		cfg.Defaults.Classes[i] = domain.CharacterClass(strings.ToLower(strings.TrimSpace(string(class))))
	}
	if len(cfg.Defaults.Classes) == 0 {
		cfg.Defaults.Classes = cfg.ClassNames()
	}
	if cfg.History.Key == "" {
		cfg.History.Key = domain.HistoryStorageKey
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
