package completion

import (
	"context"

	"github.com/doeshing/agpt/internal/domain"
)

// Task is the handle for one in-flight exchange.
type Task struct {
	id     string
	prompt string
	redo   bool
	cancel context.CancelFunc
	done   chan struct{}
	result domain.CompletionResult
}

func newTask(req domain.CompletionRequest, redo bool, cancel context.CancelFunc) *Task {
	return &Task{
		id:     req.ID,
		prompt: req.Prompt,
		redo:   redo,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID returns the request ID.
func (t *Task) ID() string { return t.id }

// Prompt returns the prompt that was sent.
func (t *Task) Prompt() string { return t.prompt }

// Redo reports whether the task was started by Redo.
func (t *Task) Redo() bool { return t.redo }

// Done is closed once the result is available and the orchestrator is idle again.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result blocks until the exchange resolves.
func (t *Task) Result() domain.CompletionResult {
	<-t.done
	return t.result
}

// Wait blocks until the exchange resolves or ctx is done.
func (t *Task) Wait(ctx context.Context) (domain.CompletionResult, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return domain.CompletionResult{}, ctx.Err()
	}
}

// Cancel aborts the exchange. It resolves as a canceled transport error
// unless the response already arrived.
func (t *Task) Cancel() {
	t.cancel()
}

func (t *Task) resolve(result domain.CompletionResult) {
	t.result = result
	close(t.done)
}
