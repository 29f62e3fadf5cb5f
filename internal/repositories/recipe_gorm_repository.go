package repositories

import (
	"errors"
	"fmt"
	"time"

	"recipeapi/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{
		db: db,
	}
}

func preloadAssociations(db *gorm.DB) *gorm.DB {
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
	return db.Preload("Tags", byID).Preload("Ingredients", byID)
}

// List retrieves the owner's recipes, newest first.
func (r *GORMRecipeRepository) List(ownerID uint, filter RecipeFilter) ([]models.Recipe, error) {
	q := r.db.Where("user_id = ?", ownerID)
	if len(filter.TagIDs) > 0 {
		q = q.Where("id IN (?)", r.db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Where("id IN (?)", r.db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	recipes := []models.Recipe{}
	if err := preloadAssociations(q).Order("id desc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves a single recipe owned by ownerID.
func (r *GORMRecipeRepository) GetByID(ownerID, id uint) (*models.Recipe, error) {
	return getRecipe(r.db, ownerID, id)
}

func getRecipe(db *gorm.DB, ownerID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := preloadAssociations(db).Where("id = ? AND user_id = ?", id, ownerID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe by ID %d: %w", id, err)
	}
	return &recipe, nil
}

// Create inserts the recipe and links the tags and ingredients owned by the
// recipe's owner, all in one transaction. Ids that do not resolve to an owned
// row are ignored.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe, tagIDs, ingredientIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		recipe.Tags, recipe.Ingredients = nil, nil
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := linkTags(tx, recipe, tagIDs); err != nil {
			return err
		}
		return linkIngredients(tx, recipe, ingredientIDs)
	})
}

// Update writes the recipe's scalar fields and applies assoc, all in one
// transaction. On success recipe is reloaded with its associations.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe, assoc AssociationUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		recipe.UpdatedAt = time.Now()
		res := tx.Model(recipe).
			Omit(clause.Associations).
			Where("user_id = ?", recipe.UserID).
			Select("Title", "TimeMinutes", "Price", "Link", "UpdatedAt").
			Updates(recipe)
		if res.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("recipe with ID %d: %w", recipe.ID, ErrNotFound)
		}

		if assoc.TagIDs != nil {
			if err := linkTags(tx, recipe, *assoc.TagIDs); err != nil {
				return err
			}
		}
		if assoc.IngredientIDs != nil {
			if err := linkIngredients(tx, recipe, *assoc.IngredientIDs); err != nil {
				return err
			}
		}

		reloaded, err := getRecipe(tx, recipe.UserID, recipe.ID)
		if err != nil {
			return err
		}
		*recipe = *reloaded
		return nil
	})
}

// Delete removes an owned recipe together with its association rows.
func (r *GORMRecipeRepository) Delete(ownerID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("recipe with ID %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to get recipe by ID %d: %w", id, err)
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to unlink tags: %w", err)
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return fmt.Errorf("failed to unlink ingredients: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// linkTags replaces the recipe's tags with the owned subset of ids.
func linkTags(tx *gorm.DB, recipe *models.Recipe, ids []uint) error {
	tags, err := findOwned[models.Tag](tx, recipe.UserID, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve tags: %w", err)
	}
	if err := replaceAssociation(tx, recipe, "Tags", tags, len(tags)); err != nil {
		return fmt.Errorf("failed to link tags: %w", err)
	}
	recipe.Tags = tags
	return nil
}

// linkIngredients replaces the recipe's ingredients with the owned subset of ids.
func linkIngredients(tx *gorm.DB, recipe *models.Recipe, ids []uint) error {
	ingredients, err := findOwned[models.Ingredient](tx, recipe.UserID, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve ingredients: %w", err)
	}
	if err := replaceAssociation(tx, recipe, "Ingredients", ingredients, len(ingredients)); err != nil {
		return fmt.Errorf("failed to link ingredients: %w", err)
	}
	recipe.Ingredients = ingredients
	return nil
}

func replaceAssociation(tx *gorm.DB, recipe *models.Recipe, name string, values any, n int) error {
	assoc := tx.Model(recipe).Association(name)
	if n == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(values)
}
