package main

import (
	"net/http"
	"os"

	"job-research/internal/agent"
	"job-research/internal/ai"
	"job-research/internal/api"
	"job-research/internal/config"
	"job-research/internal/logging"
	"job-research/internal/pipeline"
	"job-research/internal/search"
	"job-research/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	searchClient, err := search.NewClient(cfg.SerpAPIKey)
	if err != nil {
		log.Error("failed to create search client", "error", err)
		os.Exit(1)
	}

	pipe := pipeline.New(log.With("component", "pipeline")).WithWindow(cfg.RecencyDays)
	searchService := search.NewService(searchClient, pipe, log.With("component", "search"))

	aiClient := ai.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, log.With("component", "ai"))
	researcher := agent.New(searchService, aiClient, log.With("component", "agent"))

	tasks := store.NewMemory()
	srv := api.NewServer(tasks, researcher, cfg.FrontendURL, log.With("component", "api"))

	addr := cfg.Host + ":" + cfg.Port
	log.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
