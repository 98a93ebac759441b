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

	"career_compass_v2/internal/api"
	"career_compass_v2/internal/app/service"
	"career_compass_v2/internal/common/security"
	"career_compass_v2/internal/domain/repository"
	"career_compass_v2/internal/platform/cache"
	"career_compass_v2/internal/platform/config"
	"career_compass_v2/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize session token signing
	security.InitSessionTokens()
	fmt.Println("Session tokens initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Could not apply migrations: %v", err)
	}
	fmt.Println("Database connected and migrated.")

	// 4. Initialize Redis
	cache.Connect()
	defer cache.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	quizRepo := repository.NewPgQuizResultRepository(database.DB)
	sessionRepo := repository.NewRedisSessionRepository(cache.RDB)
	tipsCache := repository.NewRedisTipsCache(cache.RDB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(
		sessionRepo,
		config.AppConfig.SessionTTL,
		config.AppConfig.SessionCookieName,
		config.AppConfig.CookieSecure,
	)
	quizService := service.NewQuizService(quizRepo)
	reflectionService := service.NewReflectionService(userRepo)

	var generator service.TipGenerator
	if config.AppConfig.GeminiAPIKey != "" {
		generator = service.NewGeminiClient(
			config.AppConfig.GeminiAPIKey,
			config.AppConfig.GeminiModel,
			config.AppConfig.GeminiEndpoint,
		)
	} else {
		log.Println("No Gemini API key configured, strand tips will use the static fallback")
	}
	tipsService := service.NewTipsService(generator, tipsCache, config.AppConfig.TipsCacheTTL)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, sessionService, quizService, reflectionService, tipsService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
