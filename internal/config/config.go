package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultTemplate is the rename pattern used when none is configured.
	DefaultTemplate = "{id} {name}{seq}{originalExt}"

	defaultConfigPath  = "~/.config/rollcall/config.toml"
	defaultJournalPath = "~/.local/share/rollcall/journal.db"
)

// DefaultExtensions are the file extensions considered submissions when no
// allow-list is configured.
var DefaultExtensions = []string{
	".doc", ".docx", ".pdf", ".txt", ".odt",
	".png", ".jpg", ".jpeg", ".heic",
	".zip",
}

// Config holds every tunable rollcall reads at startup. CLI flags override
// environment variables, which override the config file, which overrides
// the built-in defaults.
type Config struct {
	RosterPath  string   `toml:"roster_path"`
	NameRange   string   `toml:"name_range"`
	IDRange     string   `toml:"id_range"`
	Template    string   `toml:"template"`
	Extensions  []string `toml:"extensions"`
	JournalPath string   `toml:"journal_path"`
	ServerBind  string   `toml:"server_bind"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Template:    DefaultTemplate,
		Extensions:  append([]string(nil), DefaultExtensions...),
		JournalPath: defaultJournalPath,
		ServerBind:  "127.0.0.1:8321",
	}
}

// Load builds the effective configuration: defaults, then the config file
// (explicit path or the default location), then ROLLCALL_* environment
// variables. A .env file in the working directory is read first so local
// overrides work without exporting anything.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	} else if path != "" {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ROLLCALL_ROSTER"); v != "" {
		c.RosterPath = v
	}
	if v := os.Getenv("ROLLCALL_NAME_RANGE"); v != "" {
		c.NameRange = v
	}
	if v := os.Getenv("ROLLCALL_ID_RANGE"); v != "" {
		c.IDRange = v
	}
	if v := os.Getenv("ROLLCALL_TEMPLATE"); v != "" {
		c.Template = v
	}
	if v := os.Getenv("ROLLCALL_EXTENSIONS"); v != "" {
		c.Extensions = splitList(v)
	}
	if v := os.Getenv("ROLLCALL_JOURNAL"); v != "" {
		c.JournalPath = v
	}
	if v := os.Getenv("ROLLCALL_BIND"); v != "" {
		c.ServerBind = v
	}
}

func (c *Config) normalize() error {
	var err error
	if c.JournalPath, err = expandPath(c.JournalPath); err != nil {
		return err
	}
	if c.RosterPath != "" {
		if c.RosterPath, err = expandPath(c.RosterPath); err != nil {
			return err
		}
	}

	exts := make([]string, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Extensions = exts
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	expanded, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(expanded); err == nil && !info.IsDir() {
		return expanded, true, nil
	}
	return expanded, false, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandPath(value string) (string, error) {
	if value == "" {
		return value, nil
	}
	if strings.HasPrefix(value, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if value == "~" {
			value = home
		} else if len(value) > 1 && value[1] == '/' {
			value = filepath.Join(home, value[2:])
		}
	}
	return filepath.Clean(value), nil
}
