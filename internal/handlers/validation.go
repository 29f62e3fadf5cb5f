package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"reflect"
	"strconv"
	"strings"

	"recipeapi/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// cents rejects prices with more than two decimal places.
	_ = v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f*100-math.Round(f*100)) < 1e-6
	})
	return v
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", e.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "lt":
		return fmt.Sprintf("Ensure this value is less than %s.", e.Param())
	case "cents":
		return "Ensure that there are no more than 2 decimal places."
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}

// validate runs v over req and writes a 400 response when it fails. The
// returned bool reports whether req is valid.
func validate(c *fiber.Ctx, v *validator.Validate, req interface{}) (bool, error) {
	err := v.Struct(req)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		log.Printf("Error validating request: %v", err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = validationMessage(e)
	}
	return false, validationFailed(c, errorMessages)
}

func validationFailed(c *fiber.Ctx, errorMessages map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// parseID reads the :id route parameter. Anything that is not a positive
// integer cannot name a row, so it is reported as not found.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: %w", c.Params("id"), repositories.ErrNotFound)
	}
	return uint(id), nil
}

// parseIDList parses a comma separated list such as "1,2,3".
func parseIDList(s string) ([]uint, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseFlag reads a 0/1 query flag. An absent flag is false.
func parseFlag(s string) (bool, error) {
	switch s {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid flag %q, expected 0 or 1", s)
}

// serviceError maps a service error to a response: not found (including rows
// owned by someone else) becomes 404, anything else 500.
func serviceError(c *fiber.Ctx, err error, action string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found.",
		})
	}
	log.Printf("Error %s: %v", action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not " + action,
	})
}
