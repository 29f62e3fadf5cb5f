package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"recipeapi/internal/config"
	"recipeapi/internal/database"
	"recipeapi/internal/repositories"
	"recipeapi/internal/router"
	"recipeapi/internal/services"
	"recipeapi/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := database.WaitForDB(ctx, db, cfg.DBWaitAttempts, cfg.DBWaitInterval); err != nil {
		log.Fatalf("Database not ready: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client ---
	// Events are optional: without RABBITMQ_URL recipes are stored but no
	// change notifications are sent.
	var events services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	}

	app, authService := newApp(cfg, db, events)
	if err := authService.BootstrapAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.Port)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server gracefully stopped")
}

// newApp wires repositories, services and handlers on top of db.
func newApp(cfg *config.Config, db *gorm.DB, events services.EventPublisher) (*fiber.App, *services.AuthService) {
	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	ingredientRepo := repositories.NewGORMIngredientRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, services.AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	})

	app := router.New(router.Dependencies{
		DB:                db,
		AuthService:       authService,
		TagService:        services.NewTagService(tagRepo),
		IngredientService: services.NewIngredientService(ingredientRepo),
		RecipeService:     services.NewRecipeService(recipeRepo, events),
		AccessLog:         cfg.Env != "test",
	})
	return app, authService
}
