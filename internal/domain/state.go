package domain

// OrchestratorState is the lifecycle state of the request orchestrator.
type OrchestratorState string

const (
	StateIdle             OrchestratorState = "idle"
	StateSending          OrchestratorState = "sending"
	StateAwaitingResponse OrchestratorState = "awaiting_response"
	StateCompleted        OrchestratorState = "completed"
	StateFailed           OrchestratorState = "failed"
)

// InFlight reports whether a request is outstanding in this state.
func (s OrchestratorState) InFlight() bool {
	return s == StateSending || s == StateAwaitingResponse
}

// Transition records one state change.
type Transition struct {
	From OrchestratorState
	To   OrchestratorState
}

var allowedTransitions = map[OrchestratorState][]OrchestratorState{
	StateIdle:             {StateSending},
	StateSending:          {StateAwaitingResponse, StateFailed},
	StateAwaitingResponse: {StateCompleted, StateFailed},
	StateCompleted:        {StateIdle},
	StateFailed:           {StateIdle},
}

// Allowed reports whether the state machine permits moving from s to next.
func (s OrchestratorState) Allowed(next OrchestratorState) bool {
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
