package ai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/agpt/internal/domain"
)

func TestRequestBuilderBuild(t *testing.T) {
	builder := NewRequestBuilder(domain.DefaultGenerationParameters())

	req, err := builder.Build("Write a haiku about love")
	require.NoError(t, err)
	assert.Equal(t, "Write a haiku about love", req.Prompt)
	assert.Equal(t, domain.DefaultGenerationParameters(), req.Parameters)
	assert.NotEmpty(t, req.ID)

	other, err := builder.Build("Write a haiku about love")
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, other.ID, "each build gets a fresh request")
}

func TestRequestBuilderRejectsBlankPrompt(t *testing.T) {
	builder := NewRequestBuilder(domain.DefaultGenerationParameters())

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := builder.Build(prompt)
		assert.True(t, errors.Is(err, domain.ErrInvalidPrompt), "prompt %q", prompt)
	}
}

func TestEncodePayloadSendsEveryField(t *testing.T) {
	builder := NewRequestBuilder(domain.DefaultGenerationParameters())
	req, err := builder.Build("What is AI?")
	require.NoError(t, err)

	raw, err := encodePayload(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, map[string]interface{}{
		"model":             domain.DefaultCompletionModel,
		"prompt":            "What is AI?",
		"temperature":       0.7,
		"max_tokens":        float64(256),
		"top_p":             float64(1),
		"frequency_penalty": float64(0),
		"presence_penalty":  float64(0),
	}, decoded)
}
