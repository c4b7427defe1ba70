package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/agpt/internal/domain"
)

// RenderEntry prints one answer.
func RenderEntry(out io.Writer, text string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, text)
	fmt.Fprintln(out)
}

// RenderFailure prints a failed exchange with a retry hint.
func RenderFailure(out io.Writer, err error) {
	var te *domain.TransportError
	if errors.As(err, &te) {
		switch te.Kind {
		case domain.TransportStatus:
			fmt.Fprintf(out, "Request failed (HTTP %d): %s\n", te.StatusCode, emptyAs(te.Message, "no details"))
		case domain.TransportTimeout:
			fmt.Fprintln(out, "Request timed out.")
		case domain.TransportCanceled:
			fmt.Fprintln(out, "Request canceled.")
		default:
			fmt.Fprintf(out, "Request failed: %v\n", te)
		}
	} else {
		fmt.Fprintf(out, "Request failed: %v\n", err)
	}
	fmt.Fprintln(out, "Nothing was added to the history. Use /redo to try again.")
}

// RenderHistory prints the last limit entries, oldest first.
func RenderHistory(out io.Writer, entries []domain.HistoryEntry, limit int) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No answers yet.")
		return
	}
	start := 0
	if limit > 0 && len(entries) > limit {
		start = len(entries) - limit
	}
	for i := start; i < len(entries); i++ {
		entry := entries[i]
		marker := ""
		if entry.Redo {
			marker = " (redo)"
		}
		fmt.Fprintf(out, "#%d %s%s\n", i+1, entry.CreatedAt.Format(domain.TimestampFormat), marker)
		fmt.Fprintf(out, "  Q: %s\n", oneLine(entry.Prompt))
		fmt.Fprintf(out, "  A: %s\n", oneLine(entry.Text))
	}
}

// RenderStatus prints the orchestrator's observable state.
func RenderStatus(out io.Writer, state domain.OrchestratorState, lastPrompt string, hasLastPrompt bool, placeholder string, lastErr error) {
	fmt.Fprintf(out, "State: %s\n", state)
	if hasLastPrompt {
		fmt.Fprintf(out, "Redo will send: %s\n", lastPrompt)
	} else {
		fmt.Fprintf(out, "Redo will send: %s (example)\n", placeholder)
	}
	if lastErr != nil {
		fmt.Fprintf(out, "Last error: %v\n", lastErr)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func emptyAs(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
