package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Completion API defaults
const (
	// DefaultEndpoint is the hosted text-completion endpoint.
	DefaultEndpoint = "https://api.openai.com/v1/completions"
	// DefaultCompletionModel is the model identifier sent with every request.
	DefaultCompletionModel = "text-davinci-003"
	// DefaultAuthEnvVar names the environment variable holding the bearer credential.
	DefaultAuthEnvVar = "OPENAI_API_KEY"
	// DefaultOrgEnvVar names the optional organization environment variable.
	DefaultOrgEnvVar = "OPENAI_ORG_ID"
)

// Generation parameters. These are fixed for the lifetime of the process.
const (
	DefaultTemperature      = 0.7
	DefaultMaxTokens        = 256
	DefaultTopP             = 1.0
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
)

// Timeout and duration constants
const (
	// DefaultRequestTimeout bounds a single completion exchange.
	DefaultRequestTimeout = 60 * time.Second
	// DefaultTimeoutSeconds is DefaultRequestTimeout as written in the config file.
	DefaultTimeoutSeconds = 60
)

// Substitution texts
const (
	// FallbackPrompt replaces an empty submission.
	FallbackPrompt = "Say: You forgot to ask me a question!"
	// FallbackResponse replaces a response whose first choice has no text.
	FallbackResponse = "Uh oh, something has gone wrong!"
)

// History constants
const (
	// DefaultHistoryLimit is the default number of entries printed by /history.
	DefaultHistoryLimit = 20
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
