package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/agpt/internal/application/completion"
	"github.com/doeshing/agpt/internal/domain"
)

// Chat commands recognized on their own line.
const (
	chatCmdRedo    = "/redo"
	chatCmdExample = "/example"
	chatCmdHistory = "/history"
	chatCmdState   = "/state"
	chatCmdHelp    = "/help"
	chatCmdQuit    = "/quit"
	chatCmdExit    = "/exit"
)

// ChatSession is a line-based front end over one orchestrator session.
type ChatSession struct {
	orch         *completion.Orchestrator
	in           *bufio.Reader
	out          io.Writer
	historyLimit int
}

// NewChatSession constructs a session reading from in and writing to out.
// A non-nil spinner is driven by the orchestrator's transitions.
func NewChatSession(orch *completion.Orchestrator, in io.Reader, out io.Writer, spinner *Spinner, historyLimit int) *ChatSession {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if spinner != nil {
		orch.OnTransition(spinner.Observe)
	}
	return &ChatSession{
		orch:         orch,
		in:           bufio.NewReader(in),
		out:          out,
		historyLimit: historyLimit,
	}
}

// Run reads lines until EOF or /quit. Each line is submitted as a prompt
// unless it is one of the slash commands.
func (s *ChatSession) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Ask anything. Try: %q\n", s.orch.Placeholder())
	fmt.Fprintf(s.out, "Commands: %s, %s, %s, %s, %s\n", chatCmdRedo, chatCmdExample, chatCmdHistory, chatCmdState, chatCmdQuit)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, "> ")
		line, readErr := s.in.ReadString('\n')
		if readErr != nil && line == "" {
			if errors.Is(readErr, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return readErr
		}

		text := strings.TrimRight(line, "\r\n")
		switch strings.TrimSpace(text) {
		case chatCmdQuit, chatCmdExit:
			return nil
		case chatCmdHelp:
			s.printHelp()
		case chatCmdHistory:
			RenderHistory(s.out, s.orch.History(), s.historyLimit)
		case chatCmdState:
			last, ok := s.orch.LastPrompt()
			RenderStatus(s.out, s.orch.State(), last, ok, s.orch.Placeholder(), s.orch.LastError())
		case chatCmdRedo:
			s.exchange(ctx, s.orch.Redo)
		case chatCmdExample:
			example := s.orch.Placeholder()
			s.exchange(ctx, func(ctx context.Context) (*completion.Task, error) {
				return s.orch.Submit(ctx, example)
			})
		default:
			s.exchange(ctx, func(ctx context.Context) (*completion.Task, error) {
				return s.orch.Submit(ctx, text)
			})
		}

		if readErr != nil {
			return nil
		}
	}
}

func (s *ChatSession) exchange(ctx context.Context, start func(context.Context) (*completion.Task, error)) {
	task, err := start(ctx)
	if errors.Is(err, domain.ErrBusy) {
		fmt.Fprintln(s.out, "Still waiting for the previous answer.")
		return
	}
	if err != nil {
		RenderFailure(s.out, err)
		return
	}

	result, err := task.Wait(ctx)
	if err != nil {
		task.Cancel()
		result = task.Result()
	}
	if result.Failed() {
		RenderFailure(s.out, result.Err)
		return
	}
	RenderEntry(s.out, result.Text)
}

func (s *ChatSession) printHelp() {
	fmt.Fprintln(s.out, "Type a prompt and press enter to send it. An empty line sends a reminder prompt.")
	fmt.Fprintf(s.out, "  %-9s resend the last prompt\n", chatCmdRedo)
	fmt.Fprintf(s.out, "  %-9s send the suggested example\n", chatCmdExample)
	fmt.Fprintf(s.out, "  %-9s show answers so far\n", chatCmdHistory)
	fmt.Fprintf(s.out, "  %-9s show session state\n", chatCmdState)
	fmt.Fprintf(s.out, "  %-9s leave\n", chatCmdQuit)
}
