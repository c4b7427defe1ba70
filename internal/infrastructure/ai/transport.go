package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/doeshing/agpt/internal/domain"
	"github.com/doeshing/agpt/internal/ports"
	"github.com/doeshing/agpt/internal/pkg/logger"
)

const maxErrorSnippet = 200

// TransportConfig is the read-only configuration injected into the transport.
type TransportConfig struct {
	Endpoint     string
	Credential   string
	Organization string
}

// HTTPTransport posts completion requests to the configured endpoint.
type HTTPTransport struct {
	endpoint     string
	credential   string
	organization string
	httpClient   *http.Client
	logger       ports.Logger
}

// NewHTTPTransport builds a transport. A nil client falls back to a client
// with domain.DefaultRequestTimeout; a nil logger discards output.
func NewHTTPTransport(cfg TransportConfig, client *http.Client, log ports.Logger) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: domain.DefaultRequestTimeout}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &HTTPTransport{
		endpoint:     valueOrDefault(cfg.Endpoint, domain.DefaultEndpoint),
		credential:   cfg.Credential,
		organization: cfg.Organization,
		httpClient:   client,
		logger:       log,
	}
}

// Send implements ports.Transport. The channel is buffered, receives exactly
// one result and is then closed, so an abandoned caller never blocks the call.
func (t *HTTPTransport) Send(ctx context.Context, req domain.CompletionRequest) <-chan domain.TransportResult {
	out := make(chan domain.TransportResult, 1)
	go func() {
		defer close(out)
		body, err := t.Do(ctx, req)
		out <- domain.TransportResult{Body: body, Err: err}
	}()
	return out
}

// Do performs the request and blocks until it resolves. Every error it
// returns is a *domain.TransportError.
func (t *HTTPTransport) Do(ctx context.Context, req domain.CompletionRequest) ([]byte, error) {
	requestBody, err := encodePayload(req)
	if err != nil {
		return nil, &domain.TransportError{Kind: domain.TransportNetwork, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return nil, &domain.TransportError{Kind: domain.TransportNetwork, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.credential)
	if t.organization != "" {
		httpReq.Header.Set("OpenAI-Organization", t.organization)
	}

	t.logger.Debug("posting completion request", map[string]interface{}{
		"request_id": req.ID,
		"endpoint":   t.endpoint,
		"model":      req.Parameters.Model,
	})

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	defer resp.Body.Close()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		if ctxErr := classifyContext(ctx); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.TransportError{Kind: domain.TransportBody, StatusCode: resp.StatusCode, Err: err}
	}

	t.logger.Debug("completion response received", map[string]interface{}{
		"request_id": req.ID,
		"status":     resp.StatusCode,
		"bytes":      responseBody.Len(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.TransportError{
			Kind:       domain.TransportStatus,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(responseBody.Bytes()),
		}
	}

	if !json.Valid(responseBody.Bytes()) {
		return nil, &domain.TransportError{
			Kind:       domain.TransportBody,
			StatusCode: resp.StatusCode,
			Message:    "response body is not valid JSON",
		}
	}

	return responseBody.Bytes(), nil
}

// Endpoint returns the URL requests are posted to.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

func classifyError(ctx context.Context, err error) *domain.TransportError {
	if ctxErr := classifyContext(ctx); ctxErr != nil {
		return ctxErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.TransportError{Kind: domain.TransportTimeout, Err: err}
	}
	return &domain.TransportError{Kind: domain.TransportNetwork, Err: err}
}

func classifyContext(ctx context.Context) *domain.TransportError {
	switch err := ctx.Err(); {
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.TransportError{Kind: domain.TransportTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &domain.TransportError{Kind: domain.TransportCanceled, Err: err}
	default:
		return nil
	}
}

// errorMessage prefers the API's error.message and falls back to a trimmed
// snippet of the raw body.
func errorMessage(body []byte) string {
	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxErrorSnippet {
		snippet = snippet[:maxErrorSnippet] + "..."
	}
	return snippet
}

var _ ports.Transport = (*HTTPTransport)(nil)
