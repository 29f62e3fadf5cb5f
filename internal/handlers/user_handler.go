package handlers

import (
	"errors"
	"log"

	"recipeapi/internal/middleware"
	"recipeapi/internal/services"
	"recipeapi/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts and authentication.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the account routes. auth guards /me; any verb
// other than GET and PATCH on /me is answered with 405 once authenticated.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/create", h.HandleCreate)
	router.Post("/token", h.HandleToken)

	me := router.Group("/me", auth)
	me.Get("", h.HandleMe)
	me.Patch("", h.HandleUpdateMe)
}

// CreateUserRequest represents the request body for account creation.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=225"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name" validate:"max=225"`
}

// HandleCreate registers a new account.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	user, err := h.authService.CreateAccount(req.Email, req.Password, services.AccountFields{Name: req.Name})
	if err != nil {
		return h.accountError(c, err, req.Email)
	}
	return c.Status(fiber.StatusCreated).JSON(user.Profile())
}

// TokenRequest represents the request body for token issue.
type TokenRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleToken exchanges credentials for a token.
func (h *UserHandler) HandleToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("Failed login for %s", logger.RedactEmail(req.Email))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unable to authenticate with provided credentials",
			})
		}
		log.Printf("Error during login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// HandleMe returns the authenticated account's profile.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return c.JSON(user.Profile())
}

// UpdateMeRequest represents the request body for a profile update. Every
// field is optional.
type UpdateMeRequest struct {
	Email    *string `json:"email" validate:"omitnil,email,max=225"`
	Name     *string `json:"name" validate:"omitnil,max=225"`
	Password *string `json:"password" validate:"omitnil,min=5"`
}

// HandleUpdateMe applies a partial profile update.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req UpdateMeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	updated, err := h.authService.UpdateProfile(user, services.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.accountError(c, err, user.Email)
	}
	return c.JSON(updated.Profile())
}

func (h *UserHandler) accountError(c *fiber.Ctx, err error, email string) error {
	if errors.Is(err, services.ErrEmailRequired) || errors.Is(err, services.ErrEmailTaken) {
		return validationFailed(c, map[string]string{"email": err.Error()})
	}
	log.Printf("Error saving account %s: %v", logger.RedactEmail(email), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not save account",
	})
}
