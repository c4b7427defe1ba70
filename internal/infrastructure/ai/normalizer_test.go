package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/agpt/internal/domain"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "strips leading blank line", in: "\n\nHello", want: "Hello"},
		{name: "single newline untouched", in: "\nHello", want: "\nHello"},
		{name: "strips only one pair", in: "\n\n\n\nHello", want: "\n\nHello"},
		{name: "leading spaces untouched", in: " \n\nHello", want: " \n\nHello"},
		{name: "trailing whitespace untouched", in: "Hello\n\n", want: "Hello\n\n"},
		{name: "crlf untouched", in: "\r\n\r\nHello", want: "\r\n\r\nHello"},
		{name: "exactly the prefix", in: "\n\n", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "extracts first choice and strips prefix",
			body: `{"id":"cmpl-1","object":"text_completion","created":1670000000,"model":"text-davinci-003",
				"choices":[{"text":"\n\nHello there","index":0,"logprobs":null,"finish_reason":"stop"},
				{"text":"second","index":1,"finish_reason":"stop"}],
				"usage":{"prompt_tokens":5,"completion_tokens":7,"total_tokens":12}}`,
			want: "Hello there",
		},
		{
			name: "ignores unknown fields",
			body: `{"choices":[{"text":"ok","index":0,"finish_reason":"length","extra":{"a":1}}],"system_fingerprint":"fp"}`,
			want: "ok",
		},
		{
			name: "missing choices degrades",
			body: `{"id":"cmpl-1","object":"text_completion"}`,
			want: domain.FallbackResponse,
		},
		{
			name: "empty choices degrades",
			body: `{"choices":[]}`,
			want: domain.FallbackResponse,
		},
		{
			name: "choice without text degrades",
			body: `{"choices":[{"index":0,"finish_reason":"stop"}]}`,
			want: domain.FallbackResponse,
		},
		{
			name: "error envelope degrades",
			body: `{"error":{"message":"nope"}}`,
			want: domain.FallbackResponse,
		},
		{
			name: "not json degrades",
			body: `<html>bad gateway</html>`,
			want: domain.FallbackResponse,
		},
		{
			name: "empty text is kept",
			body: `{"choices":[{"text":"","index":0,"finish_reason":"stop"}]}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize([]byte(tt.body)))
		})
	}
}
