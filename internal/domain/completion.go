// Package domain defines core entities and value objects for agpt.
//
// This file holds the completion exchange types. The domain layer is
// independent of infrastructure concerns and represents pure data structures.
package domain

// GenerationParameters is the fixed configuration attached to every request.
type GenerationParameters struct {
	Model            string
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// DefaultGenerationParameters returns the parameters used by every request.
func DefaultGenerationParameters() GenerationParameters {
	return GenerationParameters{
		Model:            DefaultCompletionModel,
		Temperature:      DefaultTemperature,
		MaxTokens:        DefaultMaxTokens,
		TopP:             DefaultTopP,
		FrequencyPenalty: DefaultFrequencyPenalty,
		PresencePenalty:  DefaultPresencePenalty,
	}
}

// CompletionRequest is built fresh per submission and never mutated.
type CompletionRequest struct {
	ID         string
	Prompt     string
	Parameters GenerationParameters
}

// TransportResult is the single outcome of one transport call.
// Exactly one of Body or Err is meaningful.
type TransportResult struct {
	Body []byte
	Err  error
}

// CompletionResult is produced exactly once per request.
type CompletionResult struct {
	RequestID string
	Prompt    string
	Redo      bool
	Text      string
	Err       error
}

// Failed reports whether the exchange ended in a transport failure.
func (r CompletionResult) Failed() bool {
	return r.Err != nil
}
