package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lexchain/lexctl/internal/view"
)

// HealthOptions holds options for the health command
type HealthOptions struct {
	*GlobalOptions

	// Output is the output format (text, json)
	Output string
}

// NewHealthCommand creates the health command.
//
// The health command issues GET {base}/health and prints the backend's reply.
//
// Usage:
//
//	lexctl health [-o text|json]
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for checking backend health
func NewHealthCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &HealthOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		Long: `Check the backend's health by calling GET {base}/health.

The reply is printed as indented JSON. A status outside 2xx or an unreachable
backend is reported as an error and the command exits with status 1.`,
		Example: `  # Check health through a running console
  lexctl health

  # Call the backend directly
  lexctl health --base http://localhost:8000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Output, formatText, formatJSON); err != nil {
				return err
			}
			return opts.runOperations(cmd, opts.Output, []view.Operation{view.OpHealth},
				func(ctx context.Context, ctrl *view.Controller) error {
					return ctrl.CheckHealth(ctx)
				})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatText,
		"output format: text or json")

	return cmd
}
