package ai

import (
	"encoding/json"
	"strings"

	"github.com/doeshing/agpt/internal/domain"
	"github.com/doeshing/agpt/internal/ports"
)

const leadingBlankLine = "\n\n"

// Normalizer turns raw response bodies into display text.
type Normalizer struct {
	fallback string
}

// NewNormalizer returns a normalizer that degrades to domain.FallbackResponse.
func NewNormalizer() *Normalizer {
	return &Normalizer{fallback: domain.FallbackResponse}
}

// Normalize implements ports.ResponseNormalizer.
func (n *Normalizer) Normalize(body []byte) string {
	var decoded completionResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return n.fallback
	}
	text, ok := decoded.FirstText()
	if !ok {
		return n.fallback
	}
	return CleanText(text)
}

// Normalize parses body with the default fallback message.
func Normalize(body []byte) string {
	return NewNormalizer().Normalize(body)
}

// CleanText drops exactly one leading "\n\n" and leaves everything else as is.
func CleanText(text string) string {
	return strings.TrimPrefix(text, leadingBlankLine)
}

var _ ports.ResponseNormalizer = (*Normalizer)(nil)
