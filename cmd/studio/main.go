package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ewilliams-labs/vibestudio/internal/adapters/auth"
	"github.com/ewilliams-labs/vibestudio/internal/adapters/badgerdb"
	"github.com/ewilliams-labs/vibestudio/internal/adapters/console"
	"github.com/ewilliams-labs/vibestudio/internal/adapters/gemini"
	"github.com/ewilliams-labs/vibestudio/internal/adapters/localstore"
	"github.com/ewilliams-labs/vibestudio/internal/adapters/ollama"
	"github.com/ewilliams-labs/vibestudio/internal/adapters/sqlite"
	"github.com/ewilliams-labs/vibestudio/internal/config"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
	"github.com/ewilliams-labs/vibestudio/internal/core/services"
	"github.com/ewilliams-labs/vibestudio/internal/logger"
	"github.com/ewilliams-labs/vibestudio/internal/playback"
	"github.com/ewilliams-labs/vibestudio/internal/worker"
)

var log = logger.For("main")

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("FATAL: open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger.Configure(logger.ParseLevel(cfg.LogLevel), logOut)

	// 2. Driven adapters
	var records ports.RecordStore
	switch cfg.StorageDriver {
	case "sqlite":
		dbAdapter, err := sqlite.NewAdapter(cfg.DBPath)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize database: %v", err)
		}
		records = dbAdapter
	case "badger":
		store, err := badgerdb.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("FATAL: Failed to open badger store: %v", err)
		}
		records = store
	default:
		log.Fatalf("Unknown storage driver: %s", cfg.StorageDriver)
	}
	defer records.Close()

	repo := localstore.NewRepository(records)

	authenticator, err := auth.New(cfg.AuthStrategy)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	var provider ports.SuggestionProvider
	switch cfg.SuggestProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" && cfg.GeminiToken == "" {
			log.Warnf("no GEMINI_API_KEY or GEMINI_ACCESS_TOKEN set; suggestions disabled")
			break
		}
		provider = gemini.NewClient(gemini.Config{
			BaseURL:     cfg.GeminiBaseURL,
			Model:       cfg.GeminiModel,
			APIKey:      cfg.GeminiAPIKey,
			AccessToken: cfg.GeminiToken,
			Language:    cfg.SuggestLanguage,
		})
	case "ollama":
		provider = ollama.NewClient(cfg.OllamaHost, cfg.OllamaModel, cfg.SuggestLanguage)
	case "none":
		log.Infof("suggestions disabled")
	}

	// 3. Core
	pool := worker.NewPool(cfg.SuggestQueue)
	pool.Start(cfg.SuggestWorkers)
	defer pool.Stop()

	player := playback.NewPlayer(playback.TickerScheduler{}, cfg.PlaybackTick)
	defer player.Stop()

	studio := services.NewStudio(
		services.NewAccountService(repo, authenticator),
		services.NewCatalogService(repo),
		services.NewSuggestionService(provider, cfg.SuggestTimeout),
		player,
		pool,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	account, ok, err := studio.Start(ctx)
	if err != nil {
		log.Fatalf("FATAL: Failed to restore session: %v", err)
	}

	// 4. Driving adapter
	fmt.Println("Vibe Studio. Type help for commands.")
	if ok {
		fmt.Printf("Welcome back, %s.\n", account.Username)
	}
	handler := console.NewHandler(studio, os.Stdout)

	done := make(chan error, 1)
	go func() {
		done <- handler.Run(ctx, os.Stdin)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Errorf("console: %v", err)
		}
	case <-ctx.Done():
		log.Infof("Shutting down...")
	}
}
