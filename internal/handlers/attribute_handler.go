package handlers

import (
	"recipeapi/internal/middleware"
	"recipeapi/internal/models"
	"recipeapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AttributeHandler handles HTTP requests for tags or ingredients.
type AttributeHandler[T any, PT models.Attribute[T]] struct {
	service  *services.AttributeService[T, PT]
	validate *validator.Validate
	path     string
}

// NewAttributeHandler creates a new AttributeHandler mounted at path.
func NewAttributeHandler[T any, PT models.Attribute[T]](service *services.AttributeService[T, PT], path string) *AttributeHandler[T, PT] {
	return &AttributeHandler[T, PT]{
		service:  service,
		validate: newValidator(),
		path:     path,
	}
}

// NewTagHandler creates the handler for /tags.
func NewTagHandler(service *services.TagService) *AttributeHandler[models.Tag, *models.Tag] {
	return NewAttributeHandler[models.Tag, *models.Tag](service, "/tags")
}

// NewIngredientHandler creates the handler for /ingredients.
func NewIngredientHandler(service *services.IngredientService) *AttributeHandler[models.Ingredient, *models.Ingredient] {
	return NewAttributeHandler[models.Ingredient, *models.Ingredient](service, "/ingredients")
}

// RegisterRoutes registers the attribute routes. The router must already
// require authentication.
func (h *AttributeHandler[T, PT]) RegisterRoutes(router fiber.Router) {
	routes := router.Group(h.path)
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
	routes.Get("/:id", h.HandleGet)
	routes.Put("/:id", h.HandleReplace)
	routes.Patch("/:id", h.HandlePatch)
	routes.Delete("/:id", h.HandleDelete)
}

// AttributeRequest represents the request body for create and full update.
type AttributeRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// AttributePatchRequest represents the request body for a partial update.
type AttributePatchRequest struct {
	Name *string `json:"name" validate:"omitnil,notblank,max=255"`
}

// HandleList lists the principal's attributes. assigned_only=1 keeps only
// those used by at least one of the principal's recipes.
func (h *AttributeHandler[T, PT]) HandleList(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	assignedOnly, err := parseFlag(c.Query("assigned_only"))
	if err != nil {
		return validationFailed(c, map[string]string{"assigned_only": err.Error()})
	}
	items, err := h.service.List(ownerID, assignedOnly)
	if err != nil {
		return serviceError(c, err, "list "+h.service.Kind()+"s")
	}
	return c.JSON(items)
}

// HandleCreate creates an attribute owned by the principal.
func (h *AttributeHandler[T, PT]) HandleCreate(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	var req AttributeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	item, err := h.service.Create(ownerID, req.Name)
	if err != nil {
		return serviceError(c, err, "create "+h.service.Kind())
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGet returns one of the principal's attributes.
func (h *AttributeHandler[T, PT]) HandleGet(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "get "+h.service.Kind())
	}
	item, err := h.service.Get(ownerID, id)
	if err != nil {
		return serviceError(c, err, "get "+h.service.Kind())
	}
	return c.JSON(item)
}

// HandleReplace renames an attribute; name is required.
func (h *AttributeHandler[T, PT]) HandleReplace(c *fiber.Ctx) error {
	var req AttributeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}
	return h.rename(c, &req.Name)
}

// HandlePatch renames an attribute when a name is supplied.
func (h *AttributeHandler[T, PT]) HandlePatch(c *fiber.Ctx) error {
	var req AttributePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}
	return h.rename(c, req.Name)
}

func (h *AttributeHandler[T, PT]) rename(c *fiber.Ctx, name *string) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "update "+h.service.Kind())
	}

	var item *T
	if name == nil {
		item, err = h.service.Get(ownerID, id)
	} else {
		item, err = h.service.Rename(ownerID, id, *name)
	}
	if err != nil {
		return serviceError(c, err, "update "+h.service.Kind())
	}
	return c.JSON(item)
}

// HandleDelete deletes one of the principal's attributes.
func (h *AttributeHandler[T, PT]) HandleDelete(c *fiber.Ctx) error {
	ownerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	id, err := parseID(c)
	if err != nil {
		return serviceError(c, err, "delete "+h.service.Kind())
	}
	if err := h.service.Delete(ownerID, id); err != nil {
		return serviceError(c, err, "delete "+h.service.Kind())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
