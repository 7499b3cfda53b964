package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
	"github.com/telewaves/telewaves/internal/shared/errors"
	"github.com/telewaves/telewaves/internal/shared/fsutil"
)

type Config struct {
	TelegramAPIID    int      `koanf:"telegram_api_id"`
	TelegramAPIHash  string   `koanf:"telegram_api_hash"`
	TelegramPhone    string   `koanf:"telegram_phone"`
	TelegramDebug    bool     `koanf:"telegram_debug"`
	DownloadDir      string   `koanf:"download_dir"`
	DataDir          string   `koanf:"data_dir"`
	SessionName      string   `koanf:"session_name"`
	ChatFilter       []string `koanf:"chat_filter"`
	ExtensionsFilter []string `koanf:"extensions_filter"`
	HTTPPort         string   `koanf:"http_port"`
	BaseURL          string   `koanf:"base_url"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("download_dir") {
		k.Set("download_dir", "/library")
	}
	if !k.Exists("data_dir") {
		k.Set("data_dir", "/data")
	}
	if !k.Exists("session_name") {
		k.Set("session_name", "telegram")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}

	// Validate credentials before any file system side effects
	rawAPIID := strings.TrimSpace(k.String("telegram_api_id"))
	if rawAPIID == "" {
		return nil, errors.ErrMissingAPIID
	}
	apiID, err := strconv.Atoi(rawAPIID)
	if err != nil {
		return nil, errors.ErrInvalidAPIID
	}
	if k.String("telegram_api_hash") == "" {
		return nil, errors.ErrMissingAPIHash
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}
	cfg.TelegramAPIID = apiID

	// Filter lists arrive as comma-separated strings from the environment
	// or as real lists from a config file
	cfg.ChatFilter = filterValues(k.Get("chat_filter"))
	cfg.ExtensionsFilter = filterValues(k.Get("extensions_filter"))

	// Ensure target directories exist
	if err := fsutil.EnsureDir(cfg.DownloadDir); err != nil {
		return nil, oops.With("download_dir", cfg.DownloadDir, "context", "failed to create download directory").Wrap(err)
	}
	if err := fsutil.EnsureDir(cfg.DataDir); err != nil {
		return nil, oops.With("data_dir", cfg.DataDir, "context", "failed to create data directory").Wrap(err)
	}

	return &cfg, nil
}

// SessionPath returns the session artifact location under the data
// directory. The session file format is owned by the protocol client.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, c.SessionName)
}

// ParseFilterList parses a comma-separated filter string into normalized
// entries: trimmed, lowercased, empties dropped, duplicates collapsed
func ParseFilterList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	return lo.Uniq(lo.FilterMap(parts, func(part string, _ int) (string, bool) {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			return "", false
		}
		return part, true
	}))
}

func filterValues(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		return ParseFilterList(v)
	case []interface{}:
		return lo.Uniq(lo.FilterMap(v, func(item interface{}, _ int) (string, bool) {
			s, ok := item.(string)
			if !ok {
				return "", false
			}
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				return "", false
			}
			return s, true
		}))
	}
	return []string{}
}
