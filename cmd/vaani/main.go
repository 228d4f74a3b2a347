// Vaani is a voice-interaction gateway for a welfare-scheme assistant: it
// translates spoken audio to English, forwards the question to an external
// logic service, localizes the reply, and synthesizes speech audio.
//
// Usage:
//
//	vaani [flags]
//	vaani --config /path/to/vaani.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/vaanihq/vaani/docs"
	"github.com/vaanihq/vaani/internal/config"
	"github.com/vaanihq/vaani/internal/engine/groq"
	"github.com/vaanihq/vaani/internal/fallback"
	"github.com/vaanihq/vaani/internal/health"
	"github.com/vaanihq/vaani/internal/localize"
	"github.com/vaanihq/vaani/internal/logic"
	"github.com/vaanihq/vaani/internal/pipeline"
	"github.com/vaanihq/vaani/internal/server"
	"github.com/vaanihq/vaani/internal/store"
	"github.com/vaanihq/vaani/internal/tts/elevenlabs"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/vaani.local.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vaani %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("vaani starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Artifact stores.
	audioStore, err := store.New(cfg.Storage.OutputDir)
	if err != nil {
		slog.Error("failed to open audio store", "error", err)
		os.Exit(1)
	}
	formStore, err := store.New(cfg.Storage.FormsDir)
	if err != nil {
		slog.Error("failed to open forms store", "error", err)
		os.Exit(1)
	}

	// Stage adapters.
	groqClient := groq.New(cfg.Speech)
	logicClient := logic.New(cfg.Logic)
	responder := fallback.New(formStore)
	localizer := localize.New(groqClient, cfg.Languages)
	synthesizer := elevenlabs.New(cfg.TTS, cfg.Languages)

	pipe := pipeline.New(groqClient, logicClient, responder, localizer, synthesizer, audioStore)
	api := server.New(cfg.Server.Port, cfg.Storage.UploadDir, pipe, logicClient, groqClient, audioStore, formStore)

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort, cfg.Server.GRPCHealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	healthServer.SetReady(true)
	slog.Info("vaani ready",
		"port", cfg.Server.Port,
		"health_port", cfg.Server.HealthPort,
		"languages", len(cfg.Languages))

	if err := api.ListenAndServe(ctx); err != nil {
		slog.Error("api server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("vaani stopped")
}
