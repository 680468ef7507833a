package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"dealfinder/internal/assistant"
	"dealfinder/internal/chat"
	"dealfinder/internal/config"
	"dealfinder/internal/db"
	"dealfinder/internal/engine"
	"dealfinder/internal/logging"
	"dealfinder/internal/observability"
	"dealfinder/internal/query"
	"dealfinder/internal/repository"
	"dealfinder/internal/scraper"
)

func main() {
	cfg := config.Load()
	logger := logging.New()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})

	sessionStore := &chat.SessionStore{
		Client: redisClient,
	}

	controller := &assistant.Controller{
		Scrapers: buildScrapers(cfg, logger),
		Engine:   engine.New(cfg.MaxResults, logger),
		Sessions: sessionStore,
		Log:      logger,
	}

	var client *openai.Client
	if cfg.OpenAIKey != "" {
		client = openai.NewClient(cfg.OpenAIKey)
	}
	controller.Client = client
	controller.Parser = query.NewParser(client, logger)

	if cfg.DatabaseURL != "" {
		sqlDB, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("opening Postgres: %v", err)
		}
		controller.SearchLogs = &repository.SearchLogRepository{DB: sqlDB}

		pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("opening Postgres pool: %v", err)
		}
		defer pool.Close()
		controller.PriceHistory = &repository.PriceHistoryRepository{Pool: pool}
	} else {
		logger.Warn("[Main] DATABASE_URL not set, analytics disabled")
	}

	observability.Start(cfg.MetricsPort)

	http.Handle("/chat", chat.Handler(controller, logger))

	logger.Info("[Main] deal finder chat listening on :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, nil))
}

func buildScrapers(cfg *config.Config, logger *logging.Logger) []scraper.Scraper {
	if cfg.MockScrapers {
		logger.Info("[Main] using mock scrapers")
		return []scraper.Scraper{
			scraper.NewMock("Amazon", logger),
			scraper.NewMock("Walmart", logger),
			scraper.NewMock("eBay", logger),
		}
	}
	return []scraper.Scraper{
		scraper.NewAmazon(logger),
		scraper.NewWalmart(logger),
		scraper.NewEbay(logger),
	}
}
