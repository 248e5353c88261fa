package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/credstore"
	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/memory"
	"github.com/SebasHerPorras/produs-panel/internal/adapter/driven/produs"
	sqliteadapter "github.com/SebasHerPorras/produs-panel/internal/adapter/driven/sqlite"
	httphandler "github.com/SebasHerPorras/produs-panel/internal/adapter/driving/http"
	"github.com/SebasHerPorras/produs-panel/internal/adapter/driving/web"
	"github.com/SebasHerPorras/produs-panel/internal/application"
	"github.com/SebasHerPorras/produs-panel/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"api_base_url", cfg.APIBaseURL,
		"environment", cfg.Environment,
		"encryption", cfg.SecretKey != nil,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire storage adapters. Credentials live in the durable SQLite store;
	// origin verdicts live in a per-process session store that empties on
	// restart.
	durable := sqliteadapter.NewKVRepo(db, cfg.SecretKey)
	session := memory.NewSessionStore()
	creds := credstore.New(durable)
	verdicts := application.NewVerdictCache(session)

	// 6. Create the backend client. The session-expired callback routes
	// through a closure because the session service is built on top of the
	// client.
	var sessionSvc *application.SessionService
	client := produs.New(cfg.APIBaseURL, creds, func() {
		if sessionSvc != nil {
			sessionSvc.MarkExpired()
		}
	})
	sessionSvc = application.NewSessionService(client, creds, verdicts)

	// 7. Create the access gate over the verdict cache.
	gate := application.NewGate(verdicts, client, cfg.IsDevelopment(), cfg.CheckTTL, nil, slog.Default())
	if cfg.IsDevelopment() {
		slog.Info("development environment, access gate disabled")
	}

	// 7b. Start the proactive token refresh loop.
	refreshSvc := application.NewRefreshService(client, creds, cfg.RefreshInterval, cfg.RefreshLead)
	go refreshSvc.Start(ctx)

	// 7c. Create health service.
	healthSvc := application.NewHealthService(durable, creds, cfg.Environment, cfg.AppName, cfg.AppVersion)

	// 8. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(client, sessionSvc, healthSvc, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// 8b. Register the guarded page routes.
	web.RegisterRoutes(mux, gate, slog.Default())

	// Apply middleware.
	handler := httphandler.Wrap(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 9. Log startup complete.
	slog.Info("produspanel started",
		"listen_addr", cfg.ListenAddr,
		"environment", cfg.Environment,
	)

	// 10. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 11. Graceful shutdown with 10s timeout for HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
