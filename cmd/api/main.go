package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/chef4u/backend/config"
	"github.com/chef4u/backend/internal/api"
	"github.com/chef4u/backend/internal/database"
	"github.com/chef4u/backend/internal/logger"
	"github.com/chef4u/backend/internal/provider/gemini"
	"github.com/chef4u/backend/internal/router"
	"github.com/chef4u/backend/internal/server"
	"github.com/chef4u/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger is not up yet
		panic(err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if cfg.GeminiAPIKey == "" {
		log.Warn("no provider API key configured; generation operations will degrade")
	}

	client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiAPIURL, cfg.GeminiModel, http.DefaultClient)
	gateway := service.NewGateway(client, log)

	// Recipe book is optional: without Redis the rest of the API still works
	var book service.RecipeBook
	if redisClient, err := database.NewRedisClient(cfg, log); err != nil {
		log.Warn("recipe book disabled", zap.Error(err))
	} else {
		book = service.NewRedisRecipeBook(redisClient)
	}

	var catalog service.PriceCatalog
	if cfg.PriceSource == service.PriceSourceLive {
		catalog = service.NewLivePriceCatalog(gateway)
	} else {
		db, err := database.NewCatalogDB("")
		if err != nil {
			log.Fatal("failed to open catalog database", zap.Error(err))
		}
		catalog, err = service.NewMockPriceCatalog(db, log)
		if err != nil {
			log.Fatal("failed to seed price catalog", zap.Error(err))
		}
	}

	engine := router.SetupRouter(
		api.NewRecipeHandler(gateway, book),
		api.NewPantryHandler(gateway),
		api.NewChatHandler(gateway),
		api.NewNutritionHandler(gateway),
		api.NewPriceHandler(catalog, cfg.PriceSource),
	)

	srv := server.New(cfg, engine, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		log.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}
