// Command server runs the expense REST API and the browser front end on
// one port.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense-dashboard/internal/auth"
	"expense-dashboard/internal/config"
	"expense-dashboard/internal/handlers"
	"expense-dashboard/internal/log"
	"expense-dashboard/internal/server"
	"expense-dashboard/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentApp,
		Output:    os.Stdout,
	})
	log.SetDefault(logger)

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	logger.Info("Database ready", "path", cfg.DBPath)

	if err := seedAdmin(context.Background(), db, cfg, logger); err != nil {
		return err
	}

	apiServer := server.New(db, auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL), logger)
	h := handlers.NewHandlers(cfg.APIURL, cfg.TemplateDir, cfg.SecureCookie, logger)

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        log.Middleware(logger.WithComponent(log.ComponentHTTP))(setupRouter(h, apiServer, cfg.StaticDir)),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", srv.Addr, "api_url", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// setupRouter mounts the API under /api, the browser pages and the
// static assets on one mux.
func setupRouter(h *handlers.Handlers, apiServer *server.Server, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	apiServer.Register(mux)
	h.Register(mux)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	return mux
}

// seedAdmin creates the configured admin account unless it exists.
func seedAdmin(ctx context.Context, db *storage.DB, cfg *config.Config, logger *log.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	if _, err := db.GetUserByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user, err := db.CreateUser(ctx, cfg.AdminEmail, cfg.AdminName, hash)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	logger.Info("Admin user created", log.FieldUserID, user.ID, "email", user.Email)
	return nil
}
