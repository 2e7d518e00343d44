package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/webapi-methods/pkg/logging"
	"github.com/Sternrassler/webapi-methods/pkg/methods"
	"github.com/Sternrassler/webapi-methods/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Long: `serve exposes the catalog read-only:

  GET /health               liveness
  GET /capabilities         all paginated operations
  GET /capabilities/{op}    one operation (404 if it does not paginate)
  GET /metrics              Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, c.v.GetString("addr"), reg)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	_ = c.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func serve(ctx context.Context, addr string, reg *methods.Registry) error {
	logger := logging.NewLogger("server")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", addr).
			Int("operations", reg.Len()).
			Msg("Starting catalog server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down catalog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newServer(reg *methods.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.HandleFunc("GET /capabilities", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, viewsOf(reg))
	})
	mux.HandleFunc("GET /capabilities/{op}", func(w http.ResponseWriter, r *http.Request) {
		op := r.PathValue("op")
		c := reg.Classify(op)
		status := http.StatusOK
		if !c.Paginated() {
			status = http.StatusNotFound
		}
		writeJSON(w, status, viewOf(op, c))
	})
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := logging.NewLogger("server")
		logger.Warn().Err(err).Msg("Failed to write response")
	}
}
