// Package app provides the command-line interface implementation for lexctl.
//
// This package contains all CLI commands and their implementations, built
// with cobra. Commands are organized with a root command and subcommands:
// serve runs the console page, while health, version, search and status run
// the same view operations from a terminal.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexchain/lexctl/internal/client"
	"github.com/lexchain/lexctl/internal/config"
	"github.com/lexchain/lexctl/internal/logger"
	"github.com/lexchain/lexctl/internal/output"
	"github.com/lexchain/lexctl/internal/view"
)

const (
	// cliName is the name of the CLI application
	cliName = "lexctl"

	// cliDescription is the short description shown in help text
	cliDescription = "lexctl - LexChain backend console"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// ConfigFile is an explicit config file path
	ConfigFile string

	// Base overrides the API base path or URL
	Base string

	// Backend overrides the backend URL used by the console proxy
	Backend string

	// Timeout bounds a single backend call (0 = transport default)
	Timeout time.Duration

	// Color is the terminal color mode (auto, always, never)
	Color string

	// Verbose enables debug logging
	Verbose bool

	// config is the resolved configuration, set before any subcommand runs
	config *config.Config

	// newBackend builds the backend the controller talks to. Tests replace it.
	newBackend func(cfg *config.Config) (view.Backend, error)
}

// NewLexctlCommand creates the root lexctl command with all subcommands.
//
// Returns:
//   - A configured cobra.Command ready for execution
//
// Example:
//
//	cmd := NewLexctlCommand()
//	if err := cmd.Execute(); err != nil {
//	    os.Exit(1)
//	}
func NewLexctlCommand() *cobra.Command {
	opts := &GlobalOptions{newBackend: newClientBackend}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `lexctl is a small console for the LexChain backend.

It checks the backend's health and version and runs free-text case searches,
showing the raw JSON the backend returns plus a short list of matching cases.

Backend calls are issued under the API base path (default /lexapi). A relative
base path is resolved against the console address, so calls go through the
console's rewrite proxy; start it with "lexctl serve". An absolute base URL
calls the backend directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.complete(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "",
		"config file (default: ./lexctl.yaml or ~/.config/lexctl/lexctl.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Base, "base", "",
		"API base path or URL (default: $LEXCHAIN_API_BASE or /lexapi)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "",
		"backend URL for the console proxy (default: http://localhost:8000)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0,
		"timeout for a single backend call (default: none)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "",
		"color output: auto, always, never")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose output")

	cmd.AddCommand(
		NewServeCommand(opts),
		NewHealthCommand(opts),
		NewVersionCommand(opts),
		NewSearchCommand(opts),
		NewStatusCommand(opts),
	)

	return cmd
}

// complete loads configuration and applies flag overrides.
func (o *GlobalOptions) complete(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("base") {
		cfg.API.Base = config.ResolveBasePath(o.Base)
	}
	if flags.Changed("backend") {
		cfg.Backend.URL = o.Backend
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = o.Timeout
	}
	if flags.Changed("color") {
		cfg.Output.Color = o.Color
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	if o.Verbose {
		logger.SetDebug(true)
	}

	o.config = cfg
	logger.Debug("configuration loaded: base=%s backend=%s console=%s", cfg.API.Base, cfg.Backend.URL, cfg.GetServerAddress())
	return nil
}

// newClientBackend creates the HTTP client for the resolved API base URL.
func newClientBackend(cfg *config.Config) (view.Backend, error) {
	baseURL, err := cfg.APIBaseURL()
	if err != nil {
		return nil, err
	}
	return client.NewClient(baseURL, client.WithTimeout(cfg.API.Timeout)), nil
}

// newController creates a view controller for the current configuration.
func (o *GlobalOptions) newController() (*view.Controller, error) {
	backend, err := o.newBackend(o.config)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return view.NewController(backend), nil
}

// printer returns a terminal printer bound to the command's writers.
func (o *GlobalOptions) printer(cmd *cobra.Command) *output.Printer {
	mode, err := output.ParseColorMode(o.config.Output.Color)
	if err != nil {
		mode = output.ColorAuto
	}
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
}

// Execute runs the root command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewLexctlCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Main is the entry point used by cmd/lexctl.
func Main() {
	os.Exit(Execute(os.Args[1:], os.Stdout, os.Stderr))
}
