package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	utils "github.com/Mraprguild8133/telegramwasabi/internal"
	"github.com/Mraprguild8133/telegramwasabi/internal/api"
	"github.com/Mraprguild8133/telegramwasabi/internal/auth"
	"github.com/Mraprguild8133/telegramwasabi/internal/bot"
	"github.com/Mraprguild8133/telegramwasabi/internal/config"
	"github.com/Mraprguild8133/telegramwasabi/internal/ratelimit"
	"github.com/Mraprguild8133/telegramwasabi/internal/registry"
	"github.com/Mraprguild8133/telegramwasabi/internal/s3"
	"github.com/Mraprguild8133/telegramwasabi/internal/transfer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		utils.Shutdown(err.Error())
	}
	opts, err := config.LoadTransferOptions()
	if err != nil {
		utils.Shutdown(fmt.Sprintf("Failed to load transfer config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := s3.NewClient(ctx, s3.Options{
		Region:             cfg.WasabiRegion,
		Bucket:             cfg.WasabiBucket,
		AccessKey:          cfg.WasabiAccessKey,
		SecretKey:          cfg.WasabiSecretKey,
		Endpoint:           cfg.WasabiEndpoint,
		MultipartThreshold: opts.MultipartThreshold(),
		PartSize:           opts.PartSize(),
		MaxConcurrency:     opts.MaxConcurrentParts,
	})
	if err != nil {
		utils.Shutdown(fmt.Sprintf("Failed to build storage client: %v", err))
	}

	reg := registry.New()

	tgBot, err := bot.New(cfg, opts, reg, store)
	if err != nil {
		utils.Shutdown(fmt.Sprintf("Failed to start Telegram bot: %v", err))
	}
	limiter := ratelimit.New(opts.RateLimit, opts.RatePeriod())
	orch := transfer.NewOrchestrator(tgBot.Downloader(), store, reg, limiter, opts, cfg.DownloadDir)
	tgBot.SetOrchestrator(orch)

	go func() {
		log.Println("Starting Telegram bot 🤖")
		tgBot.Start(ctx)
	}()

	mux := http.NewServeMux()
	protect := auth.APIKeyMiddleware(&auth.Config{APIKey: cfg.APIKey})
	api.NewFileAPI(reg, store, opts).Register(mux, protect)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s 🚀", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.GracefulExit(fmt.Sprintf("Server failed: %v\n", err))
		}
	}()

	signal.Notify(utils.QuitChan, syscall.SIGINT, syscall.SIGTERM)
	<-utils.QuitChan

	log.Println("Shutting down server... 🛑")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown 🚨: %v", err)
	}

	log.Println("Server exited")
}
