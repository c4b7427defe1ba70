package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/doeshing/agpt/internal/app"
	"github.com/doeshing/agpt/internal/infrastructure/cli/commands"
)

const spinnerLabel = "waiting for completion"

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
	// HTTPClient replaces the default client used by the transport.
	HTTPClient *http.Client
}

// NewRootCmd wires the cobra root command. The container is built on first
// use so --config and --verbose are honored.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	var (
		once      sync.Once
		container *app.Container
		buildErr  error
	)
	containerFn := func(ctx context.Context) (*app.Container, error) {
		once.Do(func() {
			container, buildErr = app.BuildContainer(ctx, app.Options{
				ConfigPath: opts.ConfigPath,
				Verbose:    opts.Verbose,
				HTTPClient: opts.HTTPClient,
			})
		})
		return container, buildErr
	}

	chatCmd := newChatCommand(containerFn)

	root := &cobra.Command{
		Use:   "agpt [prompt]",
		Short: "agpt - ask a text completion model",
		Long:  "agpt sends prompts to a text completion endpoint and prints the answers. Without arguments it starts an interactive session.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return chatCmd.RunE(cmd, args)
			}
			return runAsk(cmd, containerFn, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if container != nil {
				_ = container.Logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Path to config file (default ~/.agpt/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Log request details to stderr")

	root.AddCommand(chatCmd)
	root.AddCommand(newAskCommand(containerFn))
	root.AddCommand(commands.NewExamplesCommand(containerFn))
	root.AddCommand(commands.NewConfigCommand(containerFn))
	root.AddCommand(commands.NewDoctorCommand(containerFn))
	root.AddCommand(commands.NewVersionCommand())
	root.SetContext(ctx)
	return root, nil
}

func newChatCommand(containerFn commands.ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := containerFn(cmd.Context())
			if err != nil {
				return err
			}
			orch, err := container.NewOrchestrator()
			if err != nil {
				return err
			}
			var spinner *Spinner
			if container.Config.SpinnerEnabled() {
				spinner = NewSpinner(cmd.ErrOrStderr(), spinnerLabel)
			}
			session := NewChatSession(orch, cmd.InOrStdin(), cmd.OutOrStdout(), spinner, container.Config.GetHistoryLimit())
			return session.Run(cmd.Context())
		},
	}
}

func newAskCommand(containerFn commands.ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send one prompt and print the answer",
		Long:  "Send one prompt and print the answer. An empty prompt sends a reminder to ask a question.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, containerFn, args)
		},
	}
}

func runAsk(cmd *cobra.Command, containerFn commands.ContainerFunc, args []string) error {
	ctx := cmd.Context()
	container, err := containerFn(ctx)
	if err != nil {
		return err
	}
	orch, err := container.NewOrchestrator()
	if err != nil {
		return err
	}

	task, err := orch.Submit(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	result, err := task.Wait(ctx)
	if err != nil {
		task.Cancel()
		result = task.Result()
	}
	if result.Failed() {
		return fmt.Errorf("completion failed: %w", result.Err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return nil
}
