package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/doeshing/agpt/internal/domain"
)

// Spinner displays an animated spinner while a response is outstanding.
// It can be started and stopped repeatedly.
type Spinner struct {
	frames   []string
	interval time.Duration
	writer   io.Writer
	label    string

	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSpinner creates a new spinner
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		writer:   w,
		label:    label,
	}
}

// Start begins the spinner animation. It is a no-op while already running.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopChan != nil {
		return
	}
	stop := make(chan struct{})
	s.stopChan = stop

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		idx := 0
		for {
			fmt.Fprintf(s.writer, "\r%s %s", s.frames[idx%len(s.frames)], s.label)
			idx++
			select {
			case <-stop:
				fmt.Fprintf(s.writer, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner animation and clears its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stopChan == nil {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	s.stopChan = nil
	s.mu.Unlock()

	s.wg.Wait()
}

// Observe drives the spinner from orchestrator transitions.
func (s *Spinner) Observe(t domain.Transition) {
	switch t.To {
	case domain.StateAwaitingResponse:
		s.Start()
	case domain.StateCompleted, domain.StateFailed:
		s.Stop()
	}
}
