package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/agpt/internal/domain"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultEndpoint, cfg.API.Endpoint)
	assert.Equal(t, domain.DefaultCompletionModel, cfg.API.Model)
	assert.Equal(t, 60, cfg.API.TimeoutSeconds)
	assert.Len(t, cfg.Placeholders, 6)
	assert.Contains(t, cfg.Placeholders, "Explain quantum physics in 30 words")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())

	again, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadHydratesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "api:\n  model: my-model\n  api_key: sk-file\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "my-model", cfg.API.Model)
	assert.Equal(t, "sk-file", cfg.API.APIKey)
	assert.Equal(t, domain.DefaultEndpoint, cfg.API.Endpoint)
	assert.Equal(t, domain.DefaultAuthEnvVar, cfg.API.AuthEnvVar)
	assert.Equal(t, domain.DefaultHistoryLimit, cfg.Preferences.HistoryLimit)
	assert.NotEmpty(t, cfg.GetPlaceholders())
}

func TestLoadHydratesSpinnerPreference(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "no preferences block", raw: "api:\n  model: my-model\n", want: true},
		{name: "preferences without spinner", raw: "preferences:\n  history_limit: 5\n", want: true},
		{name: "explicitly off", raw: "preferences:\n  show_spinner: false\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.raw), 0o600))

			cfg, err := NewFileLoader(path).Load(context.Background())
			require.NoError(t, err)
			require.NotNil(t, cfg.Preferences.ShowSpinner)
			assert.Equal(t, tt.want, cfg.SpinnerEnabled())
		})
	}
}

func TestLoadKeepsCustomPlaceholders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "placeholders:\n  - Tell me a joke about dolphins\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tell me a joke about dolphins"}, cfg.Placeholders)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestResolvePathHonorsEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(EnvConfigPath, path)

	assert.Equal(t, path, NewFileLoader("").Path())
	assert.Equal(t, "/explicit.yaml", NewFileLoader("/explicit.yaml").Path())
}

func TestResetOverwritesCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  model: custom\n"), 0o600))
	loader := NewFileLoader(path)

	cfg, err := loader.Reset()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCompletionModel, loaded.API.Model)
}
