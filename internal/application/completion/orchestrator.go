// Package completion owns the lifecycle of completion exchanges: it turns a
// prompt into a request, hands it to the transport, normalizes the answer and
// keeps the session history.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/agpt/internal/domain"
	"github.com/doeshing/agpt/internal/pkg/logger"
	"github.com/doeshing/agpt/internal/ports"
)

// Options carries the collaborators of an Orchestrator.
type Options struct {
	Builder    ports.RequestBuilder
	Transport  ports.Transport
	Normalizer ports.ResponseNormalizer
	Picker     ports.PlaceholderPicker
	Logger     ports.Logger
	// Timeout bounds each exchange. Zero disables the deadline.
	Timeout time.Duration
	Clock   func() time.Time
}

// Orchestrator runs one completion exchange at a time.
//
// State moves idle -> sending -> awaiting_response -> completed|failed -> idle.
// Submit and Redo are only accepted while idle.
type Orchestrator struct {
	builder    ports.RequestBuilder
	transport  ports.Transport
	normalizer ports.ResponseNormalizer
	logger     ports.Logger
	timeout    time.Duration
	now        func() time.Time

	mu            sync.Mutex
	state         domain.OrchestratorState
	history       []domain.HistoryEntry
	lastPrompt    string
	hasLastPrompt bool
	lastError     error
	placeholder   string
	observers     []func(domain.Transition)

	// notifyMu keeps observer delivery in transition order. Every state change
	// takes notifyMu before mu; observers run holding only notifyMu.
	notifyMu sync.Mutex
}

// New validates the collaborators and picks the session placeholder.
func New(opts Options) (*Orchestrator, error) {
	if opts.Builder == nil || opts.Transport == nil || opts.Normalizer == nil || opts.Picker == nil {
		return nil, errors.New("completion.Orchestrator dependencies not satisfied")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Orchestrator{
		builder:     opts.Builder,
		transport:   opts.Transport,
		normalizer:  opts.Normalizer,
		logger:      log,
		timeout:     opts.Timeout,
		now:         clock,
		state:       domain.StateIdle,
		placeholder: opts.Picker.Pick(),
	}, nil
}

// Submit starts a normal exchange. Blank input is replaced by
// domain.FallbackPrompt. The prompt becomes the one Redo resends.
func (o *Orchestrator) Submit(ctx context.Context, text string) (*Task, error) {
	return o.start(ctx, text, false)
}

// Redo resends the last submitted prompt, or the placeholder when nothing
// was submitted yet. It never changes what the next Redo sends.
func (o *Orchestrator) Redo(ctx context.Context) (*Task, error) {
	return o.start(ctx, "", true)
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() domain.OrchestratorState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// History returns a copy of the entries in display order.
func (o *Orchestrator) History() []domain.HistoryEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]domain.HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// LastError returns the failure of the most recent exchange, or nil once a
// later exchange succeeded.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

// LastPrompt returns the prompt Redo will resend and whether one was submitted.
func (o *Orchestrator) LastPrompt() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastPrompt, o.hasLastPrompt
}

// Placeholder returns the example prompt picked when the session started.
func (o *Orchestrator) Placeholder() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.placeholder
}

// OnTransition registers fn to receive every state change in order.
// fn runs outside the state lock; it may read state but must not call Submit or Redo.
// A Submit from another goroutine waits until delivery finishes.
func (o *Orchestrator) OnTransition(fn func(domain.Transition)) {
	if fn == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, fn)
}

func (o *Orchestrator) start(ctx context.Context, text string, redo bool) (*Task, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	o.lock()
	if o.state != domain.StateIdle {
		state := o.state
		o.unlock()
		o.logger.Warn("request rejected while busy", map[string]interface{}{
			"state": string(state),
			"redo":  redo,
		})
		return nil, domain.ErrBusy
	}

	prompt := o.resolvePromptLocked(text, redo)
	transitions := []domain.Transition{o.setStateLocked(domain.StateSending)}

	req, err := o.builder.Build(prompt)
	if err != nil {
		o.lastError = err
		transitions = append(transitions,
			o.setStateLocked(domain.StateFailed),
			o.setStateLocked(domain.StateIdle),
		)
		o.unlockAndNotify(transitions)
		o.logger.Error("build request", err, map[string]interface{}{"redo": redo})
		return nil, fmt.Errorf("build request: %w", err)
	}
	o.unlockAndNotify(transitions)

	reqCtx, cancel := o.requestContext(ctx)
	task := newTask(req, redo, cancel)

	o.logger.Info("sending completion request", map[string]interface{}{
		"request_id": req.ID,
		"model":      req.Parameters.Model,
		"redo":       redo,
	})
	results := o.transport.Send(reqCtx, req)

	o.lock()
	awaiting := o.setStateLocked(domain.StateAwaitingResponse)
	o.unlockAndNotify([]domain.Transition{awaiting})

	go o.await(reqCtx, task, results)
	return task, nil
}

// resolvePromptLocked applies the substitution policy and records LastPrompt
// for normal submissions.
func (o *Orchestrator) resolvePromptLocked(text string, redo bool) string {
	if redo {
		if o.hasLastPrompt {
			return o.lastPrompt
		}
		return o.placeholder
	}
	prompt := text
	if strings.TrimSpace(prompt) == "" {
		prompt = domain.FallbackPrompt
	}
	o.lastPrompt = prompt
	o.hasLastPrompt = true
	return prompt
}

func (o *Orchestrator) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout > 0 {
		return context.WithTimeout(ctx, o.timeout)
	}
	return context.WithCancel(ctx)
}

func (o *Orchestrator) await(ctx context.Context, task *Task, results <-chan domain.TransportResult) {
	defer task.cancel()

	var res domain.TransportResult
	select {
	case r, ok := <-results:
		if !ok {
			r = domain.TransportResult{Err: &domain.TransportError{
				Kind:    domain.TransportNetwork,
				Message: "transport closed without a result",
			}}
		}
		res = r
	case <-ctx.Done():
		res = domain.TransportResult{Err: contextError(ctx.Err())}
	}
	o.finish(task, res)
}

func (o *Orchestrator) finish(task *Task, res domain.TransportResult) {
	result := domain.CompletionResult{
		RequestID: task.id,
		Prompt:    task.prompt,
		Redo:      task.redo,
	}

	o.lock()
	var transitions []domain.Transition
	if res.Err != nil {
		terr := domain.AsTransportError(res.Err)
		result.Err = terr
		o.lastError = terr
		transitions = append(transitions, o.setStateLocked(domain.StateFailed))
	} else {
		result.Text = o.normalizer.Normalize(res.Body)
		o.history = append(o.history, domain.HistoryEntry{
			ID:        task.id,
			Prompt:    task.prompt,
			Text:      result.Text,
			Redo:      task.redo,
			CreatedAt: o.now(),
		})
		o.lastError = nil
		transitions = append(transitions, o.setStateLocked(domain.StateCompleted))
	}
	transitions = append(transitions, o.setStateLocked(domain.StateIdle))
	o.unlockAndNotify(transitions)

	if result.Err != nil {
		o.logger.Error("completion request failed", result.Err, map[string]interface{}{
			"request_id": task.id,
			"redo":       task.redo,
		})
	} else {
		o.logger.Info("completion request finished", map[string]interface{}{
			"request_id": task.id,
			"chars":      len(result.Text),
		})
	}
	task.resolve(result)
}

func (o *Orchestrator) setStateLocked(next domain.OrchestratorState) domain.Transition {
	if !o.state.Allowed(next) {
		panic(fmt.Sprintf("completion: illegal transition %s -> %s", o.state, next))
	}
	t := domain.Transition{From: o.state, To: next}
	o.state = next
	return t
}

func (o *Orchestrator) lock() {
	o.notifyMu.Lock()
	o.mu.Lock()
}

func (o *Orchestrator) unlock() {
	o.mu.Unlock()
	o.notifyMu.Unlock()
}

// unlockAndNotify releases mu, delivers transitions to observers in order,
// then releases notifyMu. Both locks must be held via lock.
func (o *Orchestrator) unlockAndNotify(transitions []domain.Transition) {
	observers := make([]func(domain.Transition), len(o.observers))
	copy(observers, o.observers)
	o.mu.Unlock()
	defer o.notifyMu.Unlock()

	for _, t := range transitions {
		o.logger.Debug("state transition", map[string]interface{}{
			"from": string(t.From),
			"to":   string(t.To),
		})
		for _, fn := range observers {
			fn(t)
		}
	}
}

func contextError(err error) *domain.TransportError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TransportError{Kind: domain.TransportTimeout, Err: err}
	}
	return &domain.TransportError{Kind: domain.TransportCanceled, Err: err}
}
