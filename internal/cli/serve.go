package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"hws_news/internal/feed"
	"hws_news/internal/logger"
	"hws_news/internal/metrics"
	"hws_news/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the feed once and serve it over HTTP with health and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Init(logger.Options{Output: cmd.OutOrStdout(), Debug: opts.debug})
			defer logger.Log.Info("Application stopped")

			a, err := opts.load()
			if err != nil {
				logger.Log.WithError(err).Error("Config load error")
				return err
			}
			if listen == "" {
				listen = a.cfg.ListenAddr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(reg)

			store := feed.NewStore()
			go func() {
				_, err := a.aggregator(m).Run(cmd.Context(), store.Apply)
				store.Finish(err)
			}()

			return serve(cmd.Context(), listen, server.NewServer(store, m, reg).Handler())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from config)")
	return cmd
}

// serve запускает HTTP-сервер до отмены ctx и затем корректно его останавливает.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Starting HTTP server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Log.WithError(err).Error("Server error")
		}
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
