package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sozercan/prodsight/apimodels"
	"github.com/sozercan/prodsight/internal/analyzer"
	"github.com/sozercan/prodsight/internal/assembler"
	"github.com/sozercan/prodsight/internal/config"
	"github.com/sozercan/prodsight/internal/llm"
	"github.com/sozercan/prodsight/internal/logging"
	"github.com/sozercan/prodsight/internal/prompts"
	"github.com/sozercan/prodsight/internal/schema"
	"github.com/sozercan/prodsight/internal/server"
	"github.com/sozercan/prodsight/internal/store"
)

func main() {
	configPath := flag.String("config", os.Getenv("PRODSIGHT_CONFIG"), "path to a config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := schema.New()
	if err != nil {
		log.Fatalf("failed to compile output schemas: %v", err)
	}
	asm, err := assembler.New(policy)
	if err != nil {
		log.Fatalf("failed to create assembler: %v", err)
	}

	summaries, err := store.New(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to create summary store: %v", err)
	}
	defer summaries.Close()

	// The provider is built on first use so the service starts without keys.
	llmProvider := llm.NewLazy(cfg.LLM)
	if !llmProvider.Configured() {
		slog.Warn("No model API key configured, serving heuristic results")
	}

	an := analyzer.New(llmProvider, prompts.New(cfg.Prompts.SummaryMaxChars), asm, summaries, analyzer.Options{
		ModelTimeout: cfg.LLM.Timeout,
		Models:       modelOverrides(cfg.LLM.Models),
		BatchWorkers: cfg.Analysis.BatchWorkers,
		MaxBatchSize: cfg.Analysis.MaxBatchSize,
	})

	srv := server.New(*cfg, an, llmProvider)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "provider", llmProvider.ProviderName())
	if err := srv.Run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func modelOverrides(models map[string]string) map[apimodels.AnalysisMode]string {
	out := make(map[apimodels.AnalysisMode]string, len(models))
	for mode, model := range models {
		m := apimodels.AnalysisMode(mode)
		if !m.Valid() {
			slog.Warn("ignoring model override for unknown mode", "mode", mode)
			continue
		}
		out[m] = model
	}
	return out
}
