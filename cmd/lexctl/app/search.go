package app

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexchain/lexctl/internal/view"
)

// SearchOptions holds options for the search command
type SearchOptions struct {
	*GlobalOptions

	// Output is the output format (text, json, table)
	Output string
}

// NewSearchCommand creates the search command.
//
// The search command joins its arguments into one query and issues
// GET {base}/cases/search?q=<query>. A blank query is not sent.
//
// Usage:
//
//	lexctl search <query...> [-o text|json|table]
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for searching cases
func NewSearchCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &SearchOptions{GlobalOptions: globalOpts}

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search cases",
		Long: `Run a free-text case search.

All arguments are joined with spaces into the query. The raw JSON reply is
printed followed by the matching cases (title, court, date, summary and
citations). Use -o table for a compact table or -o json for the raw reply only.`,
		Example: `  # Search for a party name
  lexctl search Doe v. Roe

  # Show results as a table
  lexctl search -o table privacy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Output, formatText, formatJSON, formatTable); err != nil {
				return err
			}
			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				opts.printer(cmd).Warning("empty query, nothing to search")
				return nil
			}
			return opts.runOperations(cmd, opts.Output, []view.Operation{view.OpSearch},
				func(ctx context.Context, ctrl *view.Controller) error {
					return ctrl.Search(ctx, query)
				})
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatText,
		"output format: text, json or table")

	return cmd
}
