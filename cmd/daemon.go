package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bnema/euserv-renew/internal/adapters/schedule"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const metricsShutdownTimeout = 5 * time.Second

func newDaemonCmd(opts *rootOptions) *cobra.Command {
	var (
		runOnStart  bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run renewal passes on the configured schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd.Context(), opts, cmd.ErrOrStderr(), wireRenewal)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			logger := app.logger

			scheduler, err := schedule.New(app.cfg.Schedule.Cron, app.cfg.Schedule.Timezone, logger, func(ctx context.Context) {
				report, err := app.orchestrator.Run(ctx)
				if err != nil {
					logger.Warn("renewal run skipped", zap.Error(err))
					return
				}
				logger.Info("renewal run finished",
					zap.String("run_id", report.ID),
					zap.String("status", string(report.Status)),
					zap.Duration("duration", report.Duration()),
				)
			})
			if err != nil {
				return fmt.Errorf("wire scheduler: %w", err)
			}

			if metricsAddr == "" {
				metricsAddr = app.cfg.MetricsAddr
			}
			if metricsAddr != "" {
				stop, err := serveMetrics(metricsAddr, app.metrics.Handler(), logger)
				if err != nil {
					return err
				}
				defer stop()
			}

			return scheduler.Run(ctx, runOnStart)
		},
	}

	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "Run once immediately instead of waiting for the first firing")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (default: metrics.addr)")

	return cmd
}

// serveMetrics listens on addr right away so a bad address fails the
// command, then serves /metrics in the background.
func serveMetrics(addr string, handler http.Handler, logger *zap.Logger) (func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", listener.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("shutdown metrics server", zap.Error(err))
		}
	}, nil
}
