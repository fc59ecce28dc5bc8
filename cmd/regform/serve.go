package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/httpapi"
	"github.com/goliatone/go-regform/internal/metrics"
	"github.com/goliatone/go-regform/internal/watcher"
	"github.com/goliatone/go-regform/pkg/form"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registration form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			orch, err := a.orchestrator()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			srv, err := httpapi.New(ctx,
				httpapi.WithLogger(a.logger),
				httpapi.WithOrchestrator(orch),
				httpapi.WithMetrics(metrics.New(reg), reg),
				httpapi.WithSubmitter(form.LogSubmitter(a.logger)),
			)
			if err != nil {
				return err
			}

			if watch, _ := cmd.Flags().GetBool("watch"); watch && a.cfg.Layout != "" {
				w, err := watcher.New(watcher.DefaultConfig(a.cfg.Layout))
				if err != nil {
					return err
				}
				changes, err := w.Start()
				if err != nil {
					return err
				}
				defer w.Stop()
				go a.reloadOnChange(ctx, srv, changes)
			}
			return srv.ListenAndServe(ctx, a.cfg.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("watch", false, "reload the layout file when it changes")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) reloadOnChange(ctx context.Context, srv *httpapi.Server, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			orch, err := a.orchestrator()
			if err == nil {
				err = srv.Reload(ctx, orch)
			}
			if err != nil {
				a.logger.Warn("layout reload failed", zap.String("layout", a.cfg.Layout), zap.Error(err))
				continue
			}
			a.logger.Info("layout reloaded", zap.String("layout", a.cfg.Layout))
		}
	}
}
