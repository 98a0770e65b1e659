package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sizefit/app/echo-server/router"
	"sizefit/business/catalog"
	"sizefit/business/chat"
	clientService "sizefit/business/client"
	"sizefit/business/sizing"
	"sizefit/internal/dataimport"
	"sizefit/internal/middleware"
	openaiRepo "sizefit/internal/repository/openai"
	psqlRepo "sizefit/internal/repository/postgres"
	redisRepo "sizefit/internal/repository/redis"
	"sizefit/internal/rest"
	"sizefit/pkg/config"
	"sizefit/pkg/database"
	redisdb "sizefit/pkg/database/redis"
	"sizefit/pkg/logger"
	"sizefit/pkg/metrics"
	"sizefit/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init repo
	clientRepo := psqlRepo.NewClientRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	purchaseRepo := psqlRepo.NewPurchaseRepository(db)
	sessionTTL := time.Duration(cfg.Redis.SessionTTLMin) * time.Minute
	sessionRepo := redisRepo.NewSessionRepository(redisClient, sessionTTL)

	// Optional seed import
	if cfg.Seed.DataDir != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		importer := dataimport.NewImporter(clientRepo, productRepo, purchaseRepo)
		if err := importer.Run(seedCtx, cfg.Seed.DataDir); err != nil {
			cancel()
			logger.Fatal("Failed to import seed data", "error", err)
		}
		cancel()
	}

	// Init service
	engine := sizing.NewEngine(sizing.DefaultConfig())
	sizingService := sizing.NewSizingService(clientRepo, productRepo, purchaseRepo, engine)
	catalogService := catalog.NewCatalogService(productRepo)
	clients := clientService.NewClientService(clientRepo)

	var llm chat.ResponseGenerator
	if cfg.OpenAI.APIKey != "" {
		llm = openaiRepo.NewOpenAIRepository(openaiRepo.Config{
			APIKey:    cfg.OpenAI.APIKey,
			Model:     cfg.OpenAI.Model,
			BaseURL:   cfg.OpenAI.BaseURL,
			RateLimit: cfg.OpenAI.RateLimit,
			Burst:     cfg.OpenAI.Burst,
		})
		logger.Info("LLM reply generation enabled", "model", cfg.OpenAI.Model)
	} else {
		logger.Info("LLM reply generation disabled, using template replies")
	}

	chatService := chat.NewChatService(sizingService, catalogService, clients, sessionRepo, llm)

	// Init handler
	authHandler := rest.NewAuthHandler(cfg.Admin)
	clientHandler := rest.NewClientHandler(clients)
	productHandler := rest.NewProductHandler(catalogService)
	recommendationHandler := rest.NewRecommendationHandler(sizingService)
	chatHandler := rest.NewChatHandler(chatService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler)
	router.SetupClientRoutes(api, clientHandler)
	router.SetupProductRoutes(api, productHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler)
	router.SetupChatRoutes(api, chatHandler)

	metrics.Init()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
