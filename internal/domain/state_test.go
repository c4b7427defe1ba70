package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/agpt/internal/domain"
)

func TestOrchestratorStateAllowed(t *testing.T) {
	tests := []struct {
		from domain.OrchestratorState
		to   domain.OrchestratorState
		want bool
	}{
		{domain.StateIdle, domain.StateSending, true},
		{domain.StateIdle, domain.StateAwaitingResponse, false},
		{domain.StateSending, domain.StateAwaitingResponse, true},
		{domain.StateSending, domain.StateSending, false},
		{domain.StateAwaitingResponse, domain.StateCompleted, true},
		{domain.StateAwaitingResponse, domain.StateFailed, true},
		{domain.StateAwaitingResponse, domain.StateIdle, false},
		{domain.StateCompleted, domain.StateIdle, true},
		{domain.StateFailed, domain.StateIdle, true},
		{domain.StateFailed, domain.StateSending, false},
	}

	for _, tt := range tests {
		if got := tt.from.Allowed(tt.to); got != tt.want {
			t.Errorf("%s -> %s allowed = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrchestratorStateInFlight(t *testing.T) {
	if !domain.StateSending.InFlight() || !domain.StateAwaitingResponse.InFlight() {
		t.Fatal("sending and awaiting_response must be in flight")
	}
	for _, s := range []domain.OrchestratorState{domain.StateIdle, domain.StateCompleted, domain.StateFailed} {
		if s.InFlight() {
			t.Fatalf("%s must not be in flight", s)
		}
	}
}

func TestAsTransportError(t *testing.T) {
	if domain.AsTransportError(nil) != nil {
		t.Fatal("nil error must stay nil")
	}

	wrapped := domain.AsTransportError(errors.New("dial tcp: refused"))
	if wrapped.Kind != domain.TransportNetwork {
		t.Fatalf("kind = %s, want network", wrapped.Kind)
	}

	original := &domain.TransportError{Kind: domain.TransportTimeout, Err: context.DeadlineExceeded}
	if got := domain.AsTransportError(original); got != original {
		t.Fatal("expected the original transport error to be returned")
	}
	if !errors.Is(original, context.DeadlineExceeded) {
		t.Fatal("transport error must unwrap to its cause")
	}
	if !domain.IsTransportError(original) {
		t.Fatal("IsTransportError must detect *TransportError")
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &domain.TransportError{Kind: domain.TransportStatus, StatusCode: 401, Message: "Incorrect API key provided"}
	want := "transport status: HTTP 401: Incorrect API key provided"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
