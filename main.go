package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag"

	"github.com/vishyyyyyyyyy/ToyoQuest/config"
	_ "github.com/vishyyyyyyyyy/ToyoQuest/docs" // swagger annotations
	"github.com/vishyyyyyyyyy/ToyoQuest/handlers"
	"github.com/vishyyyyyyyyy/ToyoQuest/logger"
	"github.com/vishyyyyyyyyy/ToyoQuest/scheduler"
	"github.com/vishyyyyyyyyy/ToyoQuest/scraper"
	"github.com/vishyyyyyyyyy/ToyoQuest/services"
	"github.com/vishyyyyyyyyy/ToyoQuest/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	if cfg.Gemini.APIKey == "" {
		logger.Warn("no GEMINI_API_KEY configured, recommendation and chat endpoints will fail until one is set")
	}
	if _, err := os.Stat(cfg.Storage.CatalogFile); err != nil {
		logger.Warn("vehicle catalog not found, recommendations unavailable until a scrape runs",
			"path", cfg.Storage.CatalogFile)
	}

	store := storage.NewStore(cfg)
	gemini := services.NewGeminiClient(cfg)
	pipeline := services.NewPipeline(cfg, store, gemini)
	siteScraper := scraper.New(cfg)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(handlers.CORSMiddleware)

	handlers.RegisterRoutes(r, &handlers.Deps{
		Cfg:      cfg,
		Store:    store,
		Pipeline: pipeline,
		Scraper:  siteScraper,
	})

	scheduler.Start(cfg, siteScraper)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", serverAddr)
	logger.Info("swagger docs available", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, r))
}
