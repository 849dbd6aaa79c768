package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/koso-app/koso/internal/app"
	"github.com/koso-app/koso/internal/server"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type serveRunner struct {
	app  *app.App
	addr string
	cmd  *cobra.Command
}

func NewServeCmd(a *app.App) *cobra.Command {
	runner := &serveRunner{app: a}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP",
		Long: `Serve every account's ledger as a JSON API.

	Set server.redis_addr to honour Idempotency-Key headers on write requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner.cmd = cmd
			return runner.Run()
		},
	}
	cmd.Flags().StringVar(&runner.addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func (r *serveRunner) Run() error {
	cfg := r.app.Service.Config.Server
	log := r.app.Logger
	if r.addr != "" {
		cfg.Addr = r.addr
	}

	var idem server.IdempotencyStore
	if cfg.RedisAddr != "" {
		rs := server.NewRedisStore(cfg.RedisAddr)
		defer func() {
			_ = rs.Close()
		}()
		if err := rs.Ping(r.cmd.Context()); err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		idem = rs
	}

	handler := server.NewHandler(r.app.Service.Ledger, log)
	srv := server.NewServer(cfg, server.NewRouter(handler, idem, cfg.IdempotencyTTL, log))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	pterm.Info.Printf("Listening on %s\n", cfg.Addr)
	log.WithField("addr", cfg.Addr).Info("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-r.cmd.Context().Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	pterm.Info.Println("Server stopped")
	return nil
}
