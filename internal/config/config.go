package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything trellis needs to talk to the Sensing Garden API.
type Config struct {
	BaseURL   string
	APIKey    string
	DeviceID  string
	ModelID   string
	PollEvery time.Duration
}

const (
	defaultConfigPath = "~/.config/trellis/config.toml"
	defaultPollEvery  = 5 * time.Second

	// Environment variables shared with the wider Sensing Garden tooling.
	// They take precedence over file values.
	envBaseURL = "API_BASE_URL"
	envAPIKey  = "SENSING_GARDEN_API_KEY"
)

// Load locates and parses the trellis config, falling back to defaults when
// missing. Environment variables override file values so the credentials the
// field tooling already exports keep working without a config file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{PollEvery: defaultPollEvery}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL     string `toml:"base_url"`
		APIKey      string `toml:"api_key"`
		DeviceID    string `toml:"device_id"`
		ModelID     string `toml:"model_id"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(raw.BaseURL)
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.DeviceID = strings.TrimSpace(raw.DeviceID)
	cfg.ModelID = strings.TrimSpace(raw.ModelID)
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}

	applyEnv(&cfg)
	return cfg, nil
}

// RequireCredentials reports an error when the API cannot be reached with the
// loaded configuration. Commands that never touch the API skip this check.
func (c Config) RequireCredentials() error {
	if c.BaseURL == "" {
		return fmt.Errorf("API base URL is not set (config base_url or %s)", envBaseURL)
	}
	if c.APIKey == "" {
		return fmt.Errorf("API key is not set (config api_key or %s)", envAPIKey)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envAPIKey)); v != "" {
		cfg.APIKey = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
