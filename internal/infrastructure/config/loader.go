package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/agpt/assets"
	"github.com/doeshing/agpt/internal/domain"
	"github.com/doeshing/agpt/internal/pkg/filesystem"
	"github.com/doeshing/agpt/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "AGPT_CONFIG"

// FileLoader loads YAML configuration from ~/.agpt/config.yaml (overridable via AGPT_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Reset overwrites the config file with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	cfg := defaultConfig()
	if err := writeDefault(path, cfg); err != nil {
		return domain.Config{}, fmt.Errorf("write default config: %w", err)
	}
	return cfg, nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".agpt", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{
			ConfigFormatVersion: "1",
			API: domain.APISettings{
				Endpoint:       domain.DefaultEndpoint,
				Model:          domain.DefaultCompletionModel,
				AuthEnvVar:     domain.DefaultAuthEnvVar,
				TimeoutSeconds: domain.DefaultTimeoutSeconds,
			},
			Preferences: domain.Preferences{
				ShowSpinner:  boolPtr(true),
				HistoryLimit: domain.DefaultHistoryLimit,
			},
			Placeholders: []string{"What is AI?"},
		}
	}
	return cfg
}

// hydrateDefaults fills the fields a partial config file left out.
func hydrateDefaults(cfg domain.Config) domain.Config {
	def := defaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.API.Endpoint == "" {
		cfg.API.Endpoint = def.API.Endpoint
	}
	if cfg.API.Model == "" {
		cfg.API.Model = def.API.Model
	}
	if cfg.API.AuthEnvVar == "" {
		cfg.API.AuthEnvVar = def.API.AuthEnvVar
	}
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if cfg.Preferences.ShowSpinner == nil {
		cfg.Preferences.ShowSpinner = def.Preferences.ShowSpinner
	}
	if cfg.Preferences.HistoryLimit <= 0 {
		cfg.Preferences.HistoryLimit = def.Preferences.HistoryLimit
	}
	if len(cfg.GetPlaceholders()) == 0 {
		cfg.Placeholders = def.Placeholders
	}
	return cfg
}

func boolPtr(v bool) *bool {
	return &v
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

// DefaultConfig exposes the bootstrap configuration template.
func DefaultConfig() domain.Config {
	return defaultConfig()
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
