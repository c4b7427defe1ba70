// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The completion orchestrator depends only on these
// interfaces, so the HTTP transport, the response parser and the placeholder
// catalog can be replaced in tests or by other backends.
package ports

import (
	"context"

	"github.com/doeshing/agpt/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.agpt/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// RequestBuilder turns a prompt into a transport-ready request.
type RequestBuilder interface {
	Build(prompt string) (domain.CompletionRequest, error)
}

// Transport performs the network call for one request.
// Send must not block; the returned channel receives exactly one result.
type Transport interface {
	Send(ctx context.Context, req domain.CompletionRequest) <-chan domain.TransportResult
}

// ResponseNormalizer extracts display text from a raw response body.
// It never fails: unreadable bodies degrade to a fixed message.
type ResponseNormalizer interface {
	Normalize(body []byte) string
}

// PlaceholderPicker supplies an example prompt.
type PlaceholderPicker interface {
	Pick() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
