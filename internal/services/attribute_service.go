package services

import (
	"recipeapi/internal/models"
	"recipeapi/internal/repositories"
)

// AttributeService handles business logic for recipe attributes. It backs
// both the tag and the ingredient endpoints.
type AttributeService[T any, PT models.Attribute[T]] struct {
	repo repositories.AttributeRepository[T]
}

// TagService is the AttributeService for tags.
type TagService = AttributeService[models.Tag, *models.Tag]

// IngredientService is the AttributeService for ingredients.
type IngredientService = AttributeService[models.Ingredient, *models.Ingredient]

// NewAttributeService creates a new AttributeService.
func NewAttributeService[T any, PT models.Attribute[T]](repo repositories.AttributeRepository[T]) *AttributeService[T, PT] {
	return &AttributeService[T, PT]{
		repo: repo,
	}
}

// NewTagService creates the service for tags.
func NewTagService(repo repositories.AttributeRepository[models.Tag]) *TagService {
	return NewAttributeService[models.Tag, *models.Tag](repo)
}

// NewIngredientService creates the service for ingredients.
func NewIngredientService(repo repositories.AttributeRepository[models.Ingredient]) *IngredientService {
	return NewAttributeService[models.Ingredient, *models.Ingredient](repo)
}

// Kind returns the singular resource name, e.g. "tag".
func (s *AttributeService[T, PT]) Kind() string {
	return PT(new(T)).Kind()
}

// List retrieves the owner's attributes.
func (s *AttributeService[T, PT]) List(ownerID uint, assignedOnly bool) ([]T, error) {
	return s.repo.List(ownerID, assignedOnly)
}

// Get retrieves a single attribute owned by ownerID.
func (s *AttributeService[T, PT]) Get(ownerID, id uint) (*T, error) {
	return s.repo.GetByID(ownerID, id)
}

// Create stores a new attribute owned by ownerID.
func (s *AttributeService[T, PT]) Create(ownerID uint, name string) (*T, error) {
	item := PT(new(T))
	item.SetName(name)
	item.SetOwnerID(ownerID)
	if err := s.repo.Create((*T)(item)); err != nil {
		return nil, err
	}
	return (*T)(item), nil
}

// Rename changes the name of an attribute owned by ownerID.
func (s *AttributeService[T, PT]) Rename(ownerID, id uint, name string) (*T, error) {
	item, err := s.repo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	PT(item).SetName(name)
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an attribute owned by ownerID.
func (s *AttributeService[T, PT]) Delete(ownerID, id uint) error {
	return s.repo.Delete(ownerID, id)
}
