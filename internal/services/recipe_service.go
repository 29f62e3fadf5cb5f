package services

import (
	"recipeapi/internal/models"
	"recipeapi/internal/repositories"
)

// RecipeInput carries every writable recipe field. It is used for create and
// full replace; nil id lists mean "no associations".
type RecipeInput struct {
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipePatch carries the fields of a partial update. Nil fields are left as
// they are; a non-nil id list replaces that association.
type RecipePatch struct {
	Title         *string
	TimeMinutes   *int
	Price         *float64
	Link          *string
	TagIDs        *[]uint
	IngredientIDs *[]uint
}

// RecipeService handles business logic related to recipes.
type RecipeService struct {
	repo   repositories.RecipeRepository
	events EventPublisher
}

// NewRecipeService creates a new RecipeService. events may be nil.
func NewRecipeService(repo repositories.RecipeRepository, events EventPublisher) *RecipeService {
	return &RecipeService{
		repo:   repo,
		events: events,
	}
}

// List retrieves the owner's recipes matching filter.
func (s *RecipeService) List(ownerID uint, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	return s.repo.List(ownerID, filter)
}

// Get retrieves a single recipe owned by ownerID.
func (s *RecipeService) Get(ownerID, id uint) (*models.Recipe, error) {
	return s.repo.GetByID(ownerID, id)
}

// Create stores a new recipe owned by ownerID. Tag and ingredient ids the
// owner does not own are dropped.
func (s *RecipeService) Create(ownerID uint, in RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
		UserID:      ownerID,
	}
	if err := s.repo.Create(recipe, in.TagIDs, in.IngredientIDs); err != nil {
		return nil, err
	}
	publish(s.events, newRecipeEvent(EventRecipeCreated, recipe))
	return recipe, nil
}

// Replace overwrites every field of the recipe, associations included.
func (s *RecipeService) Replace(ownerID, id uint, in RecipeInput) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	recipe.Title = in.Title
	recipe.TimeMinutes = in.TimeMinutes
	recipe.Price = in.Price
	recipe.Link = in.Link

	tagIDs, ingredientIDs := in.TagIDs, in.IngredientIDs
	assoc := repositories.AssociationUpdate{TagIDs: &tagIDs, IngredientIDs: &ingredientIDs}
	return s.update(recipe, assoc)
}

// Patch applies only the supplied fields.
func (s *RecipeService) Patch(ownerID, id uint, p RecipePatch) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if p.Title != nil {
		recipe.Title = *p.Title
	}
	if p.TimeMinutes != nil {
		recipe.TimeMinutes = *p.TimeMinutes
	}
	if p.Price != nil {
		recipe.Price = *p.Price
	}
	if p.Link != nil {
		recipe.Link = *p.Link
	}
	return s.update(recipe, repositories.AssociationUpdate{TagIDs: p.TagIDs, IngredientIDs: p.IngredientIDs})
}

func (s *RecipeService) update(recipe *models.Recipe, assoc repositories.AssociationUpdate) (*models.Recipe, error) {
	if err := s.repo.Update(recipe, assoc); err != nil {
		return nil, err
	}
	publish(s.events, newRecipeEvent(EventRecipeUpdated, recipe))
	return recipe, nil
}

// Delete removes a recipe owned by ownerID.
func (s *RecipeService) Delete(ownerID, id uint) error {
	if err := s.repo.Delete(ownerID, id); err != nil {
		return err
	}
	publish(s.events, newRecipeEvent(EventRecipeDeleted, &models.Recipe{ID: id, UserID: ownerID}))
	return nil
}
