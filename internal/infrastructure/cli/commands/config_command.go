package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/agpt/internal/application/config"
	"github.com/doeshing/agpt/internal/domain"
	configinfra "github.com/doeshing/agpt/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(containerFn ContainerFunc) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect agpt configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), containerFn)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show full configuration (API key redacted)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd.Context(), cmd.OutOrStdout(), containerFn)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				container, err := containerFn(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), container.ConfigLoader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				return validateConfiguration(cmd.Context(), cmd.OutOrStdout(), containerFn)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset configuration to defaults",
			RunE: func(cmd *cobra.Command, args []string) error {
				return resetConfigurationToDefaults(cmd.Context(), cmd.OutOrStdout(), containerFn)
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show diff versus default configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), containerFn)
			},
		},
	)

	return configCmd
}

// showConfiguration displays the full configuration in YAML format
func showConfiguration(ctx context.Context, out io.Writer, containerFn ContainerFunc) error {
	cfg, err := loadConfiguration(ctx, containerFn)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(redact(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

func validateConfiguration(ctx context.Context, out io.Writer, containerFn ContainerFunc) error {
	cfg, err := loadConfiguration(ctx, containerFn)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	fmt.Fprintln(out, MsgConfigurationValid)
	return nil
}

// resetConfigurationToDefaults resets the configuration to default values
func resetConfigurationToDefaults(ctx context.Context, out io.Writer, containerFn ContainerFunc) error {
	container, err := containerFn(ctx)
	if err != nil {
		return err
	}

	cfg, err := container.ConfigLoader.Reset()
	if err != nil {
		return fmt.Errorf("failed to reset configuration: %w", err)
	}

	fmt.Fprintf(out, "Configuration reset at %s\n", container.ConfigLoader.Path())

	data, _ := yaml.Marshal(redact(cfg))
	fmt.Fprint(out, string(data))
	return nil
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(ctx context.Context, out io.Writer, containerFn ContainerFunc) error {
	currentConfig, err := loadConfiguration(ctx, containerFn)
	if err != nil {
		return err
	}

	diff := cmp.Diff(configinfra.DefaultConfig(), redact(currentConfig))
	if diff == "" {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}

func loadConfiguration(ctx context.Context, containerFn ContainerFunc) (domain.Config, error) {
	container, err := containerFn(ctx)
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func redact(cfg domain.Config) domain.Config {
	if cfg.API.APIKey != "" {
		cfg.API.APIKey = redactedSecret
	}
	return cfg
}
