package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"authportal/core"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := core.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logCloser, err := core.SetupLogging(cfg, "server.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	if abs, err := filepath.Abs(cfg.DataDir); err == nil {
		cfg.DataDir = abs
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to ensure data dir %s: %v", cfg.DataDir, err)
	}

	// First-run bootstrap: signing key and config must exist before the
	// first request is served.
	secrets := core.NewFileSecretStore(cfg.DataDir)
	if err := secrets.Ensure(); err != nil {
		log.Fatalf("failed to ensure signing key: %v", err)
	}
	if _, err := secrets.Load(); err != nil {
		log.Fatalf("signing key unreadable, refusing to start: %v", err)
	}

	appConfig := core.NewFileConfigStore(cfg.DataDir)
	if err := appConfig.Ensure(); err != nil {
		log.Fatalf("failed to ensure config.json: %v", err)
	}

	creds := core.NewFileCredentialStore(cfg.DataDir)
	pool := core.NewHashPool(core.NewHasher(core.DefaultHashParams), cfg.HashWorkers)
	defer pool.Close()

	tokens := core.NewTokenService(secrets)
	transport := core.NewSessionTransport(appConfig)
	gate := core.NewGate(creds, pool, tokens, transport)

	router := core.NewRouter(gate)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown incomplete: %v", err)
	}
}
