package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web application until SIGINT or SIGTERM, then shuts down gracefully.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}
	if cmd.IsSet("host") {
		r.config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		r.config.Server.Port = cmd.Int("port")
	}

	if err := r.config.Validate(); err != nil {
		return err
	}
	if r.config.Session.UsesDevSecret() {
		r.logger.Warn("using the development session secret; set "+shared.SecretKeyEnv+" or session.secret_key before deploying")
	}

	app, err := r.webApp()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              r.config.Server.Addr(),
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.serve(ctx, srv, ln, cmd.Bool("open"))
}

// webApp wires the stores, session signer and login limiter into a [web.App].
func (r *Runner) webApp() (*web.App, error) {
	creds, store, err := r.stores()
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewJWTSigner(r.config.Session.SecretKey, r.config.Session.TTL())
	if err != nil {
		return nil, err
	}

	gate := auth.NewGate(auth.GateOpts{
		Credentials: creds,
		Signer:      signer,
		Limiter:     auth.NewLoginLimiter(r.config.Auth.LoginRate, r.config.Auth.LoginBurst),
		Logger:      shared.WithLogger(r.logger, "component", "gate"),
	})

	return web.NewApp(web.Options{
		Gate:        gate,
		Credentials: creds,
		Catalog:     store,
		Session:     r.config.Session,
		Logger:      shared.WithLogger(r.logger, "component", "http"),
	})
}

// serve blocks until srv fails or ctx is cancelled.
func (r *Runner) serve(ctx context.Context, srv *http.Server, ln net.Listener, open bool) error {
	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()

	url := "http://" + ln.Addr().String()
	r.logger.Info("server listening", "url", url)

	if open {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down", "timeout", r.config.Server.Timeout())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.Server.Timeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	r.logger.Info("server stopped")
	return nil
}
