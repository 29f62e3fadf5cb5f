package router

import (
	"context"
	"errors"
	"log"
	"time"

	"recipeapi/internal/database"
	"recipeapi/internal/handlers"
	"recipeapi/internal/middleware"
	"recipeapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Dependencies are the services the HTTP layer is built from.
type Dependencies struct {
	DB                *gorm.DB
	AuthService       *services.AuthService
	TagService        *services.TagService
	IngredientService *services.IngredientService
	RecipeService     *services.RecipeService

	// AccessLog enables the request logger.
	AccessLog bool
}

// New assembles the Fiber app with every route.
func New(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "recipe-api",
		ErrorHandler: ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// --- Health Check Endpoint ---
	app.Get("/health", healthHandler(deps.DB))

	// --- API Routes ---
	api := app.Group("/api")
	auth := middleware.AuthRequired(deps.AuthService)

	handlers.NewUserHandler(deps.AuthService).RegisterRoutes(api.Group("/user"), auth)

	recipeAPI := api.Group("/recipe", auth)
	handlers.NewTagHandler(deps.TagService).RegisterRoutes(recipeAPI)
	handlers.NewIngredientHandler(deps.IngredientService).RegisterRoutes(recipeAPI)
	handlers.NewRecipeHandler(deps.RecipeService).RegisterRoutes(recipeAPI)

	return app
}

// ErrorHandler renders errors that escape the handlers as JSON. Fiber's own
// errors keep their status, e.g. 404 for an unknown route and 405 for a verb
// the route does not support.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		now := time.Now().Format(time.RFC3339)
		if err := database.Ping(ctx, db); err != nil {
			log.Printf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"time":   now,
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   now,
		})
	}
}
