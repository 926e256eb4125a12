package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lexchain/lexctl/internal/view"
)

// NewStatusCommand creates the status command.
//
// The status command runs the health check and then the version check,
// printing both replies.
//
// Usage:
//
//	lexctl status
func NewStatusCommand(globalOpts *GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show backend health and version",
		Long: `Show backend health and version.

Runs GET {base}/health and then GET {base}/version. Both are attempted even
if the first one fails; any failure makes the command exit with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format, formatText, formatJSON); err != nil {
				return err
			}
			return globalOpts.runOperations(cmd, format,
				[]view.Operation{view.OpHealth, view.OpVersion},
				func(ctx context.Context, ctrl *view.Controller) error { return ctrl.CheckHealth(ctx) },
				func(ctx context.Context, ctrl *view.Controller) error { return ctrl.CheckVersion(ctx) },
			)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText,
		"output format: text or json")

	return cmd
}
