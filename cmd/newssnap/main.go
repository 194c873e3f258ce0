package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"NewsSnap/internal/app"
	"NewsSnap/internal/config"
	"NewsSnap/internal/logging"
	"NewsSnap/internal/retry"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "newssnap",
		Short:         "Summarize articles through a remote summarization API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// .env is optional
			_ = godotenv.Load()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to YAML config (default $NEWSSNAP_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "error|warn|info|debug")

	root.AddCommand(
		newSummarizeCmd(flags),
		newHealthCmd(flags),
		newHistoryCmd(flags),
		newThemeCmd(flags),
	)
	return root
}

// open loads config and builds the application for one command.
func (f *rootFlags) open(cmd *cobra.Command, opts app.Options) (*app.Application, error) {
	cfg := config.Load(f.configPath)
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if opts.Out == nil {
		opts.Out = cmd.OutOrStdout()
	}
	return app.New(cmd.Context(), cfg, logging.New(cfg.Logging.Level), opts)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var failure *retry.Failure
		if errors.As(err, &failure) {
			fmt.Fprintln(os.Stderr, failure.Message)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}
