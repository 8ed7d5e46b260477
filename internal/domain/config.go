// Package domain defines the password generator entities, configuration and
// error kinds. It has no dependencies on adapters.
package domain

// Config mirrors ~/.passgen/config.yaml.
type Config struct {
	ConfigFormatVersion string                    `yaml:"config_format_version" mapstructure:"config_format_version"`
	Length              LengthBounds              `yaml:"length" mapstructure:"length"`
	Charsets            map[CharacterClass]string `yaml:"charsets" mapstructure:"charsets" validate:"required,min=1,dive,keys,required,endkeys,required"`
	StrengthTiers       []StrengthTier            `yaml:"strength_tiers" mapstructure:"strength_tiers" validate:"required,min=1,dive"`
	Defaults            Defaults                  `yaml:"defaults" mapstructure:"defaults"`
	History             HistorySettings           `yaml:"history" mapstructure:"history"`
	Clipboard           ClipboardSettings         `yaml:"clipboard" mapstructure:"clipboard"`
}

// LengthBounds constrains the password length control.
type LengthBounds struct {
	Min     int `yaml:"min" mapstructure:"min" validate:"gte=1"`
	Max     int `yaml:"max" mapstructure:"max" validate:"gtefield=Min"`
	Default int `yaml:"default" mapstructure:"default" validate:"gtefield=Min,ltefield=Max"`
}

// Defaults captures the initial state of the character-class toggles.
type Defaults struct {
	Classes []CharacterClass `yaml:"classes" mapstructure:"classes" validate:"required,min=1"`
}

// HistorySettings selects where generated passwords are remembered.
type HistorySettings struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Backend  string `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=file sqlite redis memory"`
	Key      string `yaml:"key" mapstructure:"key"`
	Path     string `yaml:"path" mapstructure:"path"`
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url" validate:"required_if=Backend redis"`
}

// ClipboardSettings controls the copy action.
type ClipboardSettings struct {
	Enabled       bool `yaml:"enabled" mapstructure:"enabled"`
	OSC52Fallback bool `yaml:"osc52_fallback" mapstructure:"osc52_fallback"`
}
