package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"NewsSnap/internal/app"
	"NewsSnap/internal/domain"
	"NewsSnap/internal/notify"
	"NewsSnap/internal/render"
	"NewsSnap/internal/retry"
	"NewsSnap/internal/state"
)

func newSummarizeCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd, app.Options{Record: asJSON})
			if err != nil {
				return err
			}
			defer a.Close()

			summary, runErr := a.Summarizer().Summarize(cmd.Context(), args[0])
			out := cmd.OutOrStdout()

			if asJSON {
				return writeJSON(out, summarizeReport{
					State:         a.Store().State(),
					Status:        a.Store().State().Status.String(),
					Notifications: a.Events(),
				}, runErr)
			}
			if runErr != nil {
				return runErr
			}
			fmt.Fprintln(out)
			return render.Summary(out, summary, render.PaletteFor(a.Theme().Mode()))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resulting state and notifications as JSON")
	return cmd
}

type summarizeReport struct {
	Status        string         `json:"status"`
	State         state.State    `json:"state"`
	Notifications []notify.Event `json:"notifications"`
}

// writeJSON prints v and then returns runErr, so a failed run still exits non-zero.
func writeJSON(w io.Writer, v any, runErr error) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return runErr
}

func newHealthCmd(flags *rootFlags) *cobra.Command {
	var (
		watch       time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the summarization API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if watch <= 0 {
				status, err := a.Health().Check(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "status: %s  timestamp: %s\n", status.Status, status.Timestamp)
				return nil
			}

			return runHealthWatch(cmd.Context(), a, out, watch, metricsAddr)
		},
	}
	cmd.Flags().DurationVar(&watch, "watch", 0, "repeat the check at this interval until interrupted")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while watching")
	return cmd
}

func runHealthWatch(ctx context.Context, a *app.Application, out io.Writer, interval time.Duration, metricsAddr string) error {
	var srv *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.Metrics().Handler())
		srv = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintln(out, "metrics server:", err)
			}
		}()
	}

	watch := a.HealthWatch(interval, func(at time.Time, status domain.HealthStatus, err error) {
		if err != nil {
			var failure *retry.Failure
			if errors.As(err, &failure) && errors.Is(failure, context.Canceled) {
				return
			}
			fmt.Fprintf(out, "%s  unhealthy: %v\n", at.Format(time.TimeOnly), err)
			return
		}
		fmt.Fprintf(out, "%s  %s\n", at.Format(time.TimeOnly), status.Status)
	})
	if err := watch.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	shutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if srv != nil {
		_ = srv.Shutdown(shutdown)
	}
	return watch.Stop(shutdown)
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or edit recent summaries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show recent summaries, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			return render.HistoryList(cmd.OutOrStdout(), a.History().List(), render.PaletteFor(a.Theme().Mode()), time.Now())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <url>",
		Short: "Remove one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			return a.History().Remove(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			return a.History().Clear(cmd.Context())
		},
	})

	return cmd
}

func newThemeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			fmt.Fprintln(cmd.OutOrStdout(), a.Theme().Mode())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			mode, err := a.Theme().Toggle(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mode)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := domain.ParseThemeMode(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q (want light or dark)", args[0])
			}
			a, err := flags.open(cmd, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Theme().Set(cmd.Context(), mode)
		},
	})

	return cmd
}
