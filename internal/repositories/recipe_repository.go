package repositories

import (
	"recipeapi/internal/models"
)

// RecipeFilter narrows a recipe listing. A recipe matches when it is linked to
// any of the given tag ids and any of the given ingredient ids; empty lists
// do not filter.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// AssociationUpdate describes how an update touches recipe associations. A nil
// pointer leaves the association untouched; a non-nil pointer replaces it with
// exactly the owned subset of the ids (an empty list clears it).
type AssociationUpdate struct {
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// RecipeRepository defines the interface for owner-scoped recipe data access.
// Returned recipes have their tags and ingredients loaded.
type RecipeRepository interface {
	List(ownerID uint, filter RecipeFilter) ([]models.Recipe, error)
	GetByID(ownerID, id uint) (*models.Recipe, error)
	Create(recipe *models.Recipe, tagIDs, ingredientIDs []uint) error
	Update(recipe *models.Recipe, assoc AssociationUpdate) error
	Delete(ownerID, id uint) error
}
