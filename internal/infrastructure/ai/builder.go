package ai

import (
	"strings"

	"github.com/google/uuid"

	"github.com/doeshing/agpt/internal/domain"
	"github.com/doeshing/agpt/internal/ports"
)

// RequestBuilder combines a prompt with the fixed generation parameters.
type RequestBuilder struct {
	params domain.GenerationParameters
	newID  func() string
}

// NewRequestBuilder returns a builder that stamps params on every request.
func NewRequestBuilder(params domain.GenerationParameters) *RequestBuilder {
	return &RequestBuilder{
		params: params,
		newID:  uuid.NewString,
	}
}

// Build implements ports.RequestBuilder.
func (b *RequestBuilder) Build(prompt string) (domain.CompletionRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return domain.CompletionRequest{}, domain.ErrInvalidPrompt
	}
	return domain.CompletionRequest{
		ID:         b.newID(),
		Prompt:     prompt,
		Parameters: b.params,
	}, nil
}

// Parameters returns the parameters attached to every request.
func (b *RequestBuilder) Parameters() domain.GenerationParameters {
	return b.params
}

var _ ports.RequestBuilder = (*RequestBuilder)(nil)
