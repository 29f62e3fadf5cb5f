package handlers

import (
	"recipeapi/internal/middleware"
	"recipeapi/internal/models"
	"recipeapi/internal/repositories"
	"recipeapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	service  *services.RecipeService
	validate *validator.Validate
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the recipe routes. The router must already
// require authentication.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router) {
	recipeRoutes := router.Group("/recipes")
	recipeRoutes.Get("/", h.HandleList)
	recipeRoutes.Post("/", h.HandleCreate)
	recipeRoutes.Get("/:id", h.HandleGet)
	recipeRoutes.Put("/:id", h.HandleReplace)
	recipeRoutes.Patch("/:id", h.HandlePatch)
	recipeRoutes.Delete("/:id", h.HandleDelete)
}

// RecipeRequest represents the request body for create and full update.
// Omitted tags or ingredients mean none.
type RecipeRequest struct {
	Title       string   `json:"title" validate:"required,notblank,max=255"`
	TimeMinutes *int     `json:"time_minutes" validate:"required,gt=0"`
	Price       *float64 `json:"price" validate:"required,gte=0,lt=1000,cents"`
	Link        string   `json:"link" validate:"max=255"`
	Tags        []uint   `json:"tags"`
	Ingredients []uint   `json:"ingredients"`
}

func (r *RecipeRequest) input() services.RecipeInput {
	return services.RecipeInput{
		Title:         r.Title,
		TimeMinutes:   *r.TimeMinutes,
		Price:         *r.Price,
		Link:          r.Link,
		TagIDs:        r.Tags,
		IngredientIDs: r.Ingredients,
	}
}

// RecipePatchRequest represents the request body for a partial update.
type RecipePatchRequest struct {
	Title       *string  `json:"title" validate:"omitnil,notblank,max=255"`
	TimeMinutes *int     `json:"time_minutes" validate:"omitnil,gt=0"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0,lt=1000,cents"`
	Link        *string  `json:"link" validate:"omitnil,max=255"`
	Tags        *[]uint  `json:"tags"`
	Ingredients *[]uint  `json:"ingredients"`
}

// HandleList lists the principal's recipes, newest first. The tags and
// ingredients query parameters take comma separated ids.
func (h *RecipeHandler) HandleList(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var filter repositories.RecipeFilter
	var err error
	if filter.TagIDs, err = parseIDList(c.Query("tags")); err != nil {
		return validationFailed(c, map[string]string{"tags": err.Error()})
	}
	if filter.IngredientIDs, err = parseIDList(c.Query("ingredients")); err != nil {
		return validationFailed(c, map[string]string{"ingredients": err.Error()})
	}

	recipes, err := h.service.List(ownerID, filter)
	if err != nil {
		return serviceError(c, err, "list recipes")
	}
	return c.JSON(models.Summaries(recipes))
}

// HandleCreate creates a recipe owned by the principal.
func (h *RecipeHandler) HandleCreate(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	recipe, err := h.service.Create(ownerID, req.input())
	if err != nil {
		return serviceError(c, err, "create recipe")
	}
	return c.Status(fiber.StatusCreated).JSON(recipe.Detail())
}

// HandleGet returns one of the principal's recipes with nested tags and
// ingredients.
func (h *RecipeHandler) HandleGet(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "get recipe")
	}
	recipe, err := h.service.Get(ownerID, id)
	if err != nil {
		return serviceError(c, err, "get recipe")
	}
	return c.JSON(recipe.Detail())
}

// HandleReplace overwrites a recipe. Omitted tags or ingredients are cleared.
func (h *RecipeHandler) HandleReplace(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "update recipe")
	}
	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	recipe, err := h.service.Replace(ownerID, id, req.input())
	if err != nil {
		return serviceError(c, err, "update recipe")
	}
	return c.JSON(recipe.Detail())
}

// HandlePatch updates only the supplied fields of a recipe.
func (h *RecipeHandler) HandlePatch(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "update recipe")
	}
	var req RecipePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	recipe, err := h.service.Patch(ownerID, id, services.RecipePatch{
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		Link:          req.Link,
		TagIDs:        req.Tags,
		IngredientIDs: req.Ingredients,
	})
	if err != nil {
		return serviceError(c, err, "update recipe")
	}
	return c.JSON(recipe.Detail())
}

// HandleDelete deletes one of the principal's recipes.
func (h *RecipeHandler) HandleDelete(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "delete recipe")
	}
	if err := h.service.Delete(ownerID, id); err != nil {
		return serviceError(c, err, "delete recipe")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
