package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExamplesCommand lists the example prompts shown as input hints.
func NewExamplesCommand(containerFn ContainerFunc) *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List example prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := containerFn(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if pick {
				fmt.Fprintln(out, container.Picker.Pick())
				return nil
			}
			for i, prompt := range container.Picker.Catalog() {
				fmt.Fprintf(out, "%d. %s\n", i+1, prompt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pick, "pick", false, "Print one example chosen at random")
	return cmd
}
