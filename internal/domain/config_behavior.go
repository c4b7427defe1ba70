package domain

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// GetEndpoint returns the configured completion endpoint or the default one.
func (c *Config) GetEndpoint() string {
	if strings.TrimSpace(c.API.Endpoint) == "" {
		return DefaultEndpoint
	}
	return c.API.Endpoint
}

// GetModel returns the model identifier sent with every request.
func (c *Config) GetModel() string {
	if strings.TrimSpace(c.API.Model) == "" {
		return DefaultCompletionModel
	}
	return c.API.Model
}

// GetTimeout returns the per-request timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// GetHistoryLimit returns how many entries a history listing shows.
func (c *Config) GetHistoryLimit() int {
	if c.Preferences.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.Preferences.HistoryLimit
}

// SpinnerEnabled reports whether the waiting spinner is shown. Unset means on.
func (c *Config) SpinnerEnabled() bool {
	if c.Preferences.ShowSpinner == nil {
		return true
	}
	return *c.Preferences.ShowSpinner
}

// GetPlaceholders returns the non-blank catalog entries in declaration order.
func (c *Config) GetPlaceholders() []string {
	out := make([]string, 0, len(c.Placeholders))
	for _, p := range c.Placeholders {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GenerationParameters returns the fixed parameters combined with the configured model.
func (c *Config) GenerationParameters() GenerationParameters {
	params := DefaultGenerationParameters()
	params.Model = c.GetModel()
	return params
}

// ResolveCredential returns the bearer credential.
// The environment variable named by auth_env_var wins over api_key in the file.
func (c *Config) ResolveCredential() string {
	envVar := c.API.AuthEnvVar
	if envVar == "" {
		envVar = DefaultAuthEnvVar
	}
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return c.API.APIKey
}

// ResolveOrganization returns the optional organization header value.
func (c *Config) ResolveOrganization() string {
	if c.API.OrgEnvVar == "" {
		return ""
	}
	return os.Getenv(c.API.OrgEnvVar)
}

// HasCredential reports whether a credential is available.
func (c *Config) HasCredential() bool {
	return c.ResolveCredential() != ""
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	if len(c.GetPlaceholders()) == 0 {
		return fmt.Errorf("placeholders must contain at least one non-blank prompt")
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout must be >= 0, got %d", c.API.TimeoutSeconds)
	}
	return nil
}
