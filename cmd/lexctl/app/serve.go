package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lexchain/lexctl/internal/logger"
	"github.com/lexchain/lexctl/internal/server"
)

// shutdownTimeout bounds how long in-flight requests may take on shutdown.
const shutdownTimeout = 10 * time.Second

// ServeOptions holds options for the serve command
type ServeOptions struct {
	*GlobalOptions

	// Host is the console host address
	Host string

	// Port is the console port
	Port int
}

// NewServeCommand creates the serve command.
//
// The serve command starts the console: the page with its three actions,
// and the rewrite proxy that forwards {base}/* to the backend.
//
// Usage:
//
//	lexctl serve [--host HOST] [--port PORT]
//
// Examples:
//
//	# Start the console on default settings (localhost:3000)
//	lexctl serve
//
//	# Point the proxy at another backend
//	lexctl serve --backend http://10.0.0.5:8000
//
// Parameters:
//   - globalOpts: Global options shared across commands
//
// Returns:
//   - A configured cobra.Command for starting the console
func NewServeCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &ServeOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the console",
		Long: `Start the lexctl console.

The console serves a single page with Check Health, Check Version and Search
actions, and forwards every request under the API base path to the backend
with the prefix stripped. Press Ctrl+C to gracefully shut down the console.`,
		Example: `  # Start on default settings (localhost:3000)
  lexctl serve

  # Listen on all interfaces
  lexctl serve --host 0.0.0.0

  # Start with verbose logging
  lexctl serve -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("host") {
				opts.config.Server.Host = opts.Host
			}
			if flags.Changed("port") {
				opts.config.Server.Port = opts.Port
			}
			if err := opts.config.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "",
		"console host address (default: localhost)")
	cmd.Flags().IntVar(&opts.Port, "port", 0,
		"console port (default: 3000)")

	// Mark unknown flags as errors
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		cmd.Println(err)
		cmd.Println()
		cmd.Println("Use \"lexctl serve --help\" for more information.")
		return err
	})

	return cmd
}

// runServe starts the console and blocks until it fails or an interrupt
// signal arrives, then shuts it down gracefully.
func runServe(parent context.Context, opts *ServeOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := opts.config

	ctrl, err := opts.newController()
	if err != nil {
		return err
	}
	srv, err := server.NewServer(cfg, ctrl)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Press Ctrl+C to stop")
		if err := srv.Start(); err != nil {
			if isAddressInUse(err) {
				logger.Error("Port %d is already in use", cfg.Server.Port)
				logger.Error("Please stop the existing process or use a different port with --port")
				return fmt.Errorf("address already in use: %s", cfg.GetServerAddress())
			}
			logger.Error("Console failed to start: %v", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("console shutdown failed: %w", err)
		}
		logger.Info("Console stopped")
		return nil
	})

	return g.Wait()
}

// isAddressInUse checks if the error is due to address already in use
func isAddressInUse(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "address already in use") ||
		strings.Contains(msg, "Only one usage")
}
