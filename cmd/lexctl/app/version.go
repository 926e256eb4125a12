package app

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/lexchain/lexctl/internal/view"
)

// Build information, set via -ldflags at release time.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "dev"
)

// VersionOptions holds options for the version command
type VersionOptions struct {
	*GlobalOptions

	// Client shows only client version
	Client bool

	// Server shows only the backend version
	Server bool

	// Output is the output format for the backend version (text, json)
	Output string
}

// NewVersionCommand creates the version command.
//
// The version command displays version information for lexctl and/or the
// backend (GET {base}/version).
//
// Usage:
//
//	lexctl version [--client] [--server] [-o text|json]
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for displaying version info
func NewVersionCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &VersionOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long: `Display version information for lexctl and the backend.

By default, shows both. Use --client or --server to show only one. The
backend version is printed as the JSON the backend returns.`,
		Example: `  # Show both versions
  lexctl version

  # Show only the backend version
  lexctl version --server`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Output, formatText, formatJSON); err != nil {
				return err
			}
			return runVersion(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Client, "client", false,
		"show client version only")
	cmd.Flags().BoolVar(&opts.Server, "server", false,
		"show backend version only")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatText,
		"output format for the backend version: text or json")

	return cmd
}

// runVersion executes the version command logic.
func runVersion(cmd *cobra.Command, opts *VersionOptions) error {
	showClient := opts.Client || (!opts.Client && !opts.Server)
	showServer := opts.Server || (!opts.Client && !opts.Server)

	out := cmd.OutOrStdout()
	if showClient {
		fmt.Fprintln(out, "Client Version:")
		fmt.Fprintf(out, "  Version:    %s\n", version)
		fmt.Fprintf(out, "  Build Time: %s\n", buildTime)
		fmt.Fprintf(out, "  Git Commit: %s\n", gitCommit)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
	}

	if !showServer {
		return nil
	}
	if showClient {
		fmt.Fprintln(out)
	}
	return opts.runOperations(cmd, opts.Output, []view.Operation{view.OpVersion},
		func(ctx context.Context, ctrl *view.Controller) error {
			return ctrl.CheckVersion(ctx)
		})
}
