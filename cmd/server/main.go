package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"user-service/internal/application/services"
	"user-service/internal/config"
	"user-service/internal/delivery/handler"
	"user-service/internal/infrastructure"
	"user-service/internal/infrastructure/db/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()

	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	redisClient := infrastructure.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	cache := infrastructure.NewRedisCache(redisClient)
	defer cache.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := cache.Ping(pingCtx); err != nil {
		log.Printf("Warning: Redis unreachable at %s, reads will fall through to the store: %v", cfg.RedisAddr, err)
	}
	cancelPing()

	userRepo := postgres.NewUserRepository(db)
	hasher := infrastructure.NewBcryptHasher(cfg.BcryptCost)
	userService := services.NewUserService(userRepo, cache, hasher, cfg.CacheTTL)

	e := echo.New()
	e.HideBanner = true
	handler.RegisterRoutes(e, handler.NewHandler(userService), cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on %s", cfg.ServerAddress)
		if err := e.Start(cfg.ServerAddress); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
