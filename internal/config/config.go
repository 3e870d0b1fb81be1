package config

import (
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultEditorPath is the editor config read when no path is given and
// EditorPathEnv is unset.
const (
	DefaultEditorPath = "typesxml.yaml"
	EditorPathEnv     = "TYPESXML_CONFIG"
)

// Editor holds all configuration for the typesxml tools.
type Editor struct {
	// Output
	IndentChar string `yaml:"indent_char"` // single character, "tab" for '\t'
	IndentSize int    `yaml:"indent_size"`

	// Logging: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Snapshot store
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultEditor returns Editor config with sensible defaults.
func DefaultEditor() Editor {
	return Editor{
		IndentChar: " ",
		IndentSize: 4,
		LogLevel:   "warn",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "typesxml",
			Password: "typesxml",
			DBName:   "typesxml",
			SSLMode:  "disable",
		},
	}
}

// Indent returns the indentation character and width for written files.
func (e Editor) Indent() (rune, int) {
	if e.IndentChar == "tab" {
		return '\t', e.IndentSize
	}
	r, _ := utf8.DecodeRuneInString(e.IndentChar)
	if r == utf8.RuneError {
		r = ' '
	}
	return r, e.IndentSize
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (e Editor) SlogLevel() slog.Level {
	switch e.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate checks values that cannot be repaired silently.
func (e Editor) Validate() error {
	if e.IndentSize < 0 {
		return fmt.Errorf("indent_size must not be negative, got %d", e.IndentSize)
	}
	if e.IndentChar != "tab" && utf8.RuneCountInString(e.IndentChar) > 1 {
		return fmt.Errorf("indent_char must be a single character or \"tab\", got %q", e.IndentChar)
	}
	return nil
}

// EditorPath resolves the config file: an explicit path wins, then
// $TYPESXML_CONFIG, then DefaultEditorPath.
func EditorPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EditorPathEnv); p != "" {
		return p
	}
	return DefaultEditorPath
}

// LoadEditor loads editor config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadEditor(path string) (Editor, error) {
	cfg := DefaultEditor()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
