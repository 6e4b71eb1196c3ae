// main.go - Entry point of the admission daemon.
//
// The daemon exposes the transaction admission pipeline over HTTP. Verification
// keys are read from an exported key directory; proof verification runs either
// in-process against the gnark backend or against a remote verification service,
// depending on configuration.
//
// Usage:
//   admissiond [config.json]

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admission/internal/rollup"
	"admission/internal/validator"
	"admission/internal/verifier"
)

func main() {
	flag.Parse()
	configPath := "config.json"
	if flag.NArg() > 0 {
		configPath = flag.Arg(0)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, logFile, err := NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Block production feeds this store as L2 blocks are assembled; the daemon
	// itself only reads from it.
	blocks := rollup.NewMemoryBlockStore()
	chain := verifier.NewFileChainState(cfg.KeyDir)

	var client verifier.Client
	var verifyHandler http.Handler
	if cfg.VerifierURL != "" {
		client = verifier.NewHTTPClient(cfg.VerifierURL, time.Duration(cfg.VerifierTimeoutSeconds)*time.Second)
		log.Info().Str("url", cfg.VerifierURL).Msg("using remote verification service")
	} else {
		backend := verifier.NewBackend()
		client = backend
		verifyHandler = verifier.NewService(backend, log)
		log.Info().Msg("using in-process gnark verification backend")
	}

	protocol := validator.DefaultConfig()
	proofs, err := verifier.New(protocol, chain, client, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building proof verifier")
	}
	v := validator.New(protocol, blocks, proofs, log)

	health := NewHealthChecker()
	health.RegisterComponent("key_dir", func() error {
		_, err := os.Stat(cfg.KeyDir)
		return err
	})

	metrics := NewMetrics()
	limiter := NewRateLimiter(cfg.RateLimitBurst, cfg.RateLimitPerSecond, time.Second)
	server := NewServer(v, verifyHandler, health, metrics, limiter, log)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Handler(),
	}
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("admission daemon listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
