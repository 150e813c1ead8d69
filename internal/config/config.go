package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/assistant/internal/logger"
	"github.com/jeanpaul/assistant/internal/storage"
)

const appName = "assistant"

type Config struct {
	DataDir   string          `yaml:"data_dir" mapstructure:"data_dir"`
	Storage   StorageConfig   `yaml:"storage" mapstructure:"storage"`
	Birthdays BirthdaysConfig `yaml:"birthdays" mapstructure:"birthdays"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Theme     string          `yaml:"theme" mapstructure:"theme" validate:"omitempty,oneof=green amber"`
	Autosave  bool            `yaml:"autosave" mapstructure:"autosave"`
}

type StorageConfig struct {
	Backend      string `yaml:"backend" mapstructure:"backend" validate:"oneof=yaml json sqlite"`
	ContactsFile string `yaml:"contacts_file" mapstructure:"contacts_file" validate:"required_unless=Backend sqlite"`
	NotesFile    string `yaml:"notes_file" mapstructure:"notes_file" validate:"required_unless=Backend sqlite"`
	SQLitePath   string `yaml:"sqlite_path" mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
}

type BirthdaysConfig struct {
	DefaultDays int `yaml:"default_days" mapstructure:"default_days" validate:"gte=0"`
}

type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

// expandPath resolves $VARS and a leading ~.
func expandPath(s string) string {
	s = envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(strings.TrimPrefix(match, "$")); ok {
			return val
		}
		return match
	})
	if s == "~" || strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s = filepath.Join(home, strings.TrimPrefix(s, "~"))
		}
	}
	return s
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{
			Backend:      storage.BackendYAML,
			ContactsFile: "addressbook.yaml",
			NotesFile:    "notesbook.yaml",
			SQLitePath:   "assistant.db",
		},
		Birthdays: BirthdaysConfig{DefaultDays: 7},
		Log: LogConfig{
			Level:      "info",
			File:       "assistant.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
		Theme:    "green",
		Autosave: true,
	}
}

// Dir is the per-user config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// Load reads the config file at path, or searches ., the config dir and
// ~/.config/assistant for config.yaml when path is empty. Missing files fall
// back to defaults; ASSISTANT_* env vars override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
	}

	v.SetEnvPrefix("ASSISTANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.Storage.ContactsFile = expandPath(cfg.Storage.ContactsFile)
	cfg.Storage.NotesFile = expandPath(cfg.Storage.NotesFile)
	cfg.Storage.SQLitePath = expandPath(cfg.Storage.SQLitePath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isNotFound covers both "no config.yaml on the search path" and an explicit
// path that does not exist.
func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.contacts_file", cfg.Storage.ContactsFile)
	v.SetDefault("storage.notes_file", cfg.Storage.NotesFile)
	v.SetDefault("storage.sqlite_path", cfg.Storage.SQLitePath)
	v.SetDefault("birthdays.default_days", cfg.Birthdays.DefaultDays)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("log.max_age_days", cfg.Log.MaxAgeDays)
	v.SetDefault("log.compress", cfg.Log.Compress)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("autosave", cfg.Autosave)
}

// Validate normalizes case and checks every field against its validate tag.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = "green"
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}

	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = describe(fe)
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

var validate = newValidator()

// newValidator reports fields by their YAML key path.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describe(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s %q is invalid (must be one of %s)", key, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must not be negative, got %v", key, fe.Value())
	case "required_if", "required_unless":
		return fmt.Sprintf("%s is required for this storage backend", key)
	}
	return fmt.Sprintf("%s failed %s", key, fe.Tag())
}

// StorageOptions maps the storage section onto storage.Options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:      c.Storage.Backend,
		Dir:          c.DataDir,
		ContactsFile: c.Storage.ContactsFile,
		NotesFile:    c.Storage.NotesFile,
		SQLitePath:   c.Storage.SQLitePath,
	}
}

// LoggerOptions maps the log section onto logger.Options.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   c.Log.Compress,
	}
}

// Save writes c as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
