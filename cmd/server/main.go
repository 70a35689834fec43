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

	"fasalmitra/internal/advisor"
	"fasalmitra/internal/config"
	"fasalmitra/internal/database"
	"fasalmitra/internal/handlers"
	"fasalmitra/internal/middleware"
	"fasalmitra/internal/repository"
	"fasalmitra/internal/router"
	"fasalmitra/internal/services"
)

func main() {
	log.Println("Starting FasalMitra backend...")

	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// Repositories
	userRepo := repository.NewUserRepo(pool)
	seasonRepo := repository.NewSeasonRepo(pool)
	convRepo := repository.NewConversationRepo(pool)

	// Advisor
	chatClient, err := advisor.NewChatClient(context.Background(), cfg)
	if err != nil {
		log.Fatalf("✗ Advisor client initialization failed: %v", err)
	}
	contextStore := advisor.NewContextStore(redisClient)
	orchestrator := advisor.NewOrchestrator(chatClient, contextStore, cfg.AdvisorConcurrency)
	log.Printf("✓ Advisor ready (provider: %s)", cfg.AdvisorProvider)

	// Services
	authService := services.NewAuthService(userRepo)
	chatService := services.NewChatService(convRepo, seasonRepo, orchestrator)
	if translator := advisor.NewTranslatorFromConfig(cfg); translator != nil {
		chatService.WithTranslator(translator)
		log.Println("✓ Multilingual translation enabled")
	}

	// Handlers
	basicAuth := middleware.NewBasicAuth(userRepo)
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	seasonHandler := handlers.NewSeasonHandler(seasonRepo)

	r := router.New(basicAuth, authHandler, chatHandler, seasonHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ FasalMitra backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
