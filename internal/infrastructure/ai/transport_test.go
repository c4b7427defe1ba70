package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/agpt/internal/domain"
)

func newTestRequest(t *testing.T, prompt string) domain.CompletionRequest {
	t.Helper()
	req, err := NewRequestBuilder(domain.DefaultGenerationParameters()).Build(prompt)
	require.NoError(t, err)
	return req
}

func requireTransportError(t *testing.T, err error, kind domain.TransportErrorKind) *domain.TransportError {
	t.Helper()
	var te *domain.TransportError
	require.True(t, errors.As(err, &te), "expected *domain.TransportError, got %T: %v", err, err)
	assert.Equal(t, kind, te.Kind)
	return te
}

func TestHTTPTransportPostsRequest(t *testing.T) {
	var (
		gotMethod string
		gotHeader http.Header
		gotBody   map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"text":"\n\nHi","index":0,"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	transport := NewHTTPTransport(TransportConfig{
		Endpoint:     server.URL,
		Credential:   "sk-test",
		Organization: "org-1",
	}, server.Client(), nil)

	body, err := transport.Do(context.Background(), newTestRequest(t, "How does coffee work?"))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer sk-test", gotHeader.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "org-1", gotHeader.Get("OpenAI-Organization"))
	assert.Equal(t, "How does coffee work?", gotBody["prompt"])
	assert.Equal(t, domain.DefaultCompletionModel, gotBody["model"])
	assert.Equal(t, "Hi", Normalize(body))
}

func TestHTTPTransportStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	}))
	defer server.Close()

	transport := NewHTTPTransport(TransportConfig{Endpoint: server.URL}, server.Client(), nil)
	_, err := transport.Do(context.Background(), newTestRequest(t, "What is AI?"))

	te := requireTransportError(t, err, domain.TransportStatus)
	assert.Equal(t, http.StatusUnauthorized, te.StatusCode)
	assert.Equal(t, "Incorrect API key provided", te.Message)
}

func TestHTTPTransportStatusErrorWithPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	transport := NewHTTPTransport(TransportConfig{Endpoint: server.URL}, server.Client(), nil)
	_, err := transport.Do(context.Background(), newTestRequest(t, "What is AI?"))

	te := requireTransportError(t, err, domain.TransportStatus)
	assert.Equal(t, "upstream unavailable", te.Message)
}

func TestHTTPTransportMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[`)
	}))
	defer server.Close()

	transport := NewHTTPTransport(TransportConfig{Endpoint: server.URL}, server.Client(), nil)
	_, err := transport.Do(context.Background(), newTestRequest(t, "What is AI?"))

	requireTransportError(t, err, domain.TransportBody)
}

func TestHTTPTransportSchemaMismatchIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"object":"list"}`)
	}))
	defer server.Close()

	transport := NewHTTPTransport(TransportConfig{Endpoint: server.URL}, server.Client(), nil)
	body, err := transport.Do(context.Background(), newTestRequest(t, "What is AI?"))

	require.NoError(t, err)
	assert.Equal(t, domain.FallbackResponse, Normalize(body))
}

func TestHTTPTransportConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	transport := NewHTTPTransport(TransportConfig{Endpoint: url}, &http.Client{}, nil)
	_, err := transport.Do(context.Background(), newTestRequest(t, "What is AI?"))

	requireTransportError(t, err, domain.TransportNetwork)
}

func TestHTTPTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	transport := NewHTTPTransport(TransportConfig{Endpoint: server.URL}, server.Client(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := transport.Do(ctx, newTestRequest(t, "What is AI?"))
	requireTransportError(t, err, domain.TransportTimeout)
}

func TestHTTPTransportSendDeliversExactlyOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[{"text":"once","index":0,"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	transport := NewHTTPTransport(TransportConfig{Endpoint: server.URL}, server.Client(), nil)
	results := transport.Send(context.Background(), newTestRequest(t, "What is AI?"))

	var got []domain.TransportResult
	for res := range results {
		got = append(got, res)
	}
	require.Len(t, got, 1)
	require.NoError(t, got[0].Err)
	assert.Equal(t, "once", Normalize(got[0].Body))
}

func TestNewHTTPTransportDefaultsEndpoint(t *testing.T) {
	transport := NewHTTPTransport(TransportConfig{}, nil, nil)
	assert.Equal(t, domain.DefaultEndpoint, transport.Endpoint())
}
