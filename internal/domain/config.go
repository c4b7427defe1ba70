package domain

// Config mirrors ~/.agpt/config.yaml.
type Config struct {
	ConfigFormatVersion string      `yaml:"config_format_version"`
	API                 APISettings `yaml:"api"`
	Preferences         Preferences `yaml:"preferences"`
	Placeholders        []string    `yaml:"placeholders"`
}

// APISettings describes the completion endpoint and how to authenticate with it.
type APISettings struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key,omitempty"`
	AuthEnvVar     string `yaml:"auth_env_var"`
	OrgEnvVar      string `yaml:"org_env_var,omitempty"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// Preferences captures user level toggles. ShowSpinner is nil when the
// file leaves it out.
type Preferences struct {
	ShowSpinner  *bool `yaml:"show_spinner,omitempty"`
	HistoryLimit int   `yaml:"history_limit"`
}
