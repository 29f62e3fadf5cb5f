package repositories

import (
	"errors"
	"fmt"

	"recipeapi/internal/models"

	"gorm.io/gorm"
)

// GORMAttributeRepository is a GORM implementation of AttributeRepository
// shared by tags and ingredients.
type GORMAttributeRepository[T any, PT models.Attribute[T]] struct {
	db *gorm.DB
}

// NewGORMAttributeRepository creates a new instance of GORMAttributeRepository.
func NewGORMAttributeRepository[T any, PT models.Attribute[T]](db *gorm.DB) *GORMAttributeRepository[T, PT] {
	return &GORMAttributeRepository[T, PT]{
		db: db,
	}
}

// NewGORMTagRepository returns the attribute repository for tags.
func NewGORMTagRepository(db *gorm.DB) *GORMAttributeRepository[models.Tag, *models.Tag] {
	return NewGORMAttributeRepository[models.Tag](db)
}

// NewGORMIngredientRepository returns the attribute repository for ingredients.
func NewGORMIngredientRepository(db *gorm.DB) *GORMAttributeRepository[models.Ingredient, *models.Ingredient] {
	return NewGORMAttributeRepository[models.Ingredient](db)
}

func (r *GORMAttributeRepository[T, PT]) kind() string {
	return PT(new(T)).Kind()
}

// List retrieves the owner's attributes.
func (r *GORMAttributeRepository[T, PT]) List(ownerID uint, assignedOnly bool) ([]T, error) {
	q := r.db.Where("user_id = ?", ownerID)
	if assignedOnly {
		// IN (subquery) instead of a join keeps each attribute to one row no
		// matter how many recipes reference it.
		table, column := PT(new(T)).RecipeJoin()
		assigned := r.db.Table(table).
			Select(table+"."+column).
			Joins("JOIN recipes ON recipes.id = "+table+".recipe_id").
			Where("recipes.user_id = ?", ownerID)
		q = q.Where("id IN (?)", assigned)
	}

	items := []T{}
	if err := q.Order("name desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.kind(), err)
	}
	return items, nil
}

// GetByID retrieves a single attribute owned by ownerID.
func (r *GORMAttributeRepository[T, PT]) GetByID(ownerID, id uint) (*T, error) {
	var item T
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with ID %d: %w", r.kind(), id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by ID %d: %w", r.kind(), id, err)
	}
	return &item, nil
}

// FindOwned resolves ids to attributes owned by ownerID, dropping the rest.
func (r *GORMAttributeRepository[T, PT]) FindOwned(ownerID uint, ids []uint) ([]T, error) {
	items, err := findOwned[T](r.db, ownerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %ss: %w", r.kind(), err)
	}
	return items, nil
}

// Create creates a new attribute. The caller sets the owner.
func (r *GORMAttributeRepository[T, PT]) Create(item *T) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.kind(), err)
	}
	return nil
}

// Update renames an attribute, provided it still belongs to its owner.
func (r *GORMAttributeRepository[T, PT]) Update(item *T) error {
	p := PT(item)
	res := r.db.Model(item).Where("user_id = ?", p.OwnerID()).Select("Name", "UpdatedAt").Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", r.kind(), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s with ID %d: %w", r.kind(), p.GetID(), ErrNotFound)
	}
	return nil
}

// Delete removes an attribute and its recipe links.
func (r *GORMAttributeRepository[T, PT]) Delete(ownerID, id uint) error {
	table, column := PT(new(T)).RecipeJoin()
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%s with ID %d: %w", r.kind(), id, ErrNotFound)
			}
			return fmt.Errorf("failed to get %s by ID %d: %w", r.kind(), id, err)
		}
		if err := tx.Exec("DELETE FROM "+table+" WHERE "+column+" = ?", id).Error; err != nil {
			return fmt.Errorf("failed to unlink %s from recipes: %w", r.kind(), err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", r.kind(), err)
		}
		return nil
	})
}

// findOwned is shared with the recipe repository so association resolution
// can run inside the recipe transaction.
func findOwned[T any](db *gorm.DB, ownerID uint, ids []uint) ([]T, error) {
	items := []T{}
	if len(ids) == 0 {
		return items, nil
	}
	if err := db.Where("user_id = ? AND id IN ?", ownerID, ids).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
