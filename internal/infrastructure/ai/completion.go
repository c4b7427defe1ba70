package ai

import (
	"encoding/json"

	"github.com/doeshing/agpt/internal/domain"
)

// completionPayload is the request body. Every field is always sent.
type completionPayload struct {
	Model            string  `json:"model"`
	Prompt           string  `json:"prompt"`
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"max_tokens"`
	TopP             float64 `json:"top_p"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
}

// completionResponse mirrors the completion API response. Only
// Choices[0].Text is consumed; the rest is accepted and ignored.
type completionResponse struct {
	ID       string             `json:"id,omitempty"`
	Object   string             `json:"object,omitempty"`
	Created  int64              `json:"created,omitempty"`
	Model    string             `json:"model,omitempty"`
	Prompt   json.RawMessage    `json:"prompt,omitempty"`
	Response json.RawMessage    `json:"response,omitempty"`
	Choices  []completionChoice `json:"choices"`
	Usage    json.RawMessage    `json:"usage,omitempty"`
}

type completionChoice struct {
	Text         *string         `json:"text"`
	Index        int             `json:"index"`
	FinishReason string          `json:"finish_reason"`
	Logprobs     json.RawMessage `json:"logprobs,omitempty"`
}

// apiErrorResponse is the error envelope returned with non-2xx statuses.
type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func encodePayload(req domain.CompletionRequest) ([]byte, error) {
	return json.Marshal(completionPayload{
		Model:            req.Parameters.Model,
		Prompt:           req.Prompt,
		Temperature:      req.Parameters.Temperature,
		MaxTokens:        req.Parameters.MaxTokens,
		TopP:             req.Parameters.TopP,
		FrequencyPenalty: req.Parameters.FrequencyPenalty,
		PresencePenalty:  req.Parameters.PresencePenalty,
	})
}

// FirstText returns the first choice's text and whether it was present.
func (c completionResponse) FirstText() (string, bool) {
	if len(c.Choices) == 0 || c.Choices[0].Text == nil {
		return "", false
	}
	return *c.Choices[0].Text, true
}
