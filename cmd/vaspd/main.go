// Command vaspd runs one VASP's travel-rule protocol engine: an HTTP
// server for inbound commands and a background loop draining queued
// follow-up actions and retried sends.
package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/travelrule/engine/internal/api"
	"github.com/travelrule/engine/internal/engine"
	"github.com/travelrule/engine/internal/envelope"
	"github.com/travelrule/engine/internal/keystore"
	"github.com/travelrule/engine/internal/logger"
	"github.com/travelrule/engine/internal/offchain"
	"github.com/travelrule/engine/internal/rpcdemo"
	"github.com/travelrule/engine/internal/walletdemo"
)

// backgroundPollInterval is how often the engine's task queue is drained
// when idle.
const backgroundPollInterval = 200 * time.Millisecond

func main() {
	logger.InitLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found", zap.Error(err))
	}

	vaspAccountID := os.Getenv("VASP_ACCOUNT_ID")
	if vaspAccountID == "" {
		logger.Fatal("VASP_ACCOUNT_ID environment variable is required")
	}

	ctx := context.Background()

	ks, err := keystore.NewClient(ctx)
	if err != nil {
		logger.Fatal("failed to build keystore client", zap.Error(err))
	}
	signingKey, err := ks.SigningKey(ctx)
	if err != nil {
		logger.Fatal("failed to resolve signing key", zap.Error(err))
	}
	signer := envelope.JWS{PrivateKey: signingKey}

	// registry only knows about this VASP; a production RPC client resolves
	// counterparties through the on-chain account registry instead. Local
	// runs and tests register peer VASPs directly (see internal/rpcdemo).
	registry := rpcdemo.NewRegistry()
	registry.Register(vaspAccountID, rpcdemo.VaspRegistration{
		BaseURL:         fmt.Sprintf("http://localhost:%s", port()),
		VerificationKey: signingKey.Public().(ed25519.PublicKey),
	})

	client := offchain.NewClient(registry, signer, vaspAccountID)
	eng := engine.New(client, registry, signer, walletdemo.Dispatcher{})

	go runBackgroundLoop(ctx, eng)

	server := api.NewServer(eng, signer)
	router := server.Router()

	srv := &http.Server{
		Addr:              ":" + port(),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
	}

	go func() {
		logger.Info("vaspd starting", zap.String("port", port()), zap.String("vasp_account_id", vaspAccountID))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exited")
}

func runBackgroundLoop(ctx context.Context, eng *engine.Engine) {
	log := logger.For(logger.ComponentEngine)
	for {
		result := eng.RunOnceBackground(ctx)
		if result.Kind == engine.TaskNone {
			time.Sleep(backgroundPollInterval)
			continue
		}
		log.Debug("background task completed", zap.String("kind", fmt.Sprint(result.Kind)))
	}
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8000"
}
