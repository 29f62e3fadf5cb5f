package services_test

import (
	"recipeapi/internal/models"
	"recipeapi/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockAttributeRepository is a mock implementation of repositories.AttributeRepository
type MockAttributeRepository[T any] struct {
	mock.Mock
}

func (m *MockAttributeRepository[T]) List(ownerID uint, assignedOnly bool) ([]T, error) {
	args := m.Called(ownerID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockAttributeRepository[T]) GetByID(ownerID, id uint) (*T, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockAttributeRepository[T]) FindOwned(ownerID uint, ids []uint) ([]T, error) {
	args := m.Called(ownerID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockAttributeRepository[T]) Create(item *T) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockAttributeRepository[T]) Update(item *T) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockAttributeRepository[T]) Delete(ownerID, id uint) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

// MockRecipeRepository is a mock implementation of repositories.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) List(ownerID uint, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetByID(ownerID, id uint) (*models.Recipe, error) {
	args := m.Called(ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Create(recipe *models.Recipe, tagIDs, ingredientIDs []uint) error {
	args := m.Called(recipe, tagIDs, ingredientIDs)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(recipe *models.Recipe, assoc repositories.AssociationUpdate) error {
	args := m.Called(recipe, assoc)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ownerID, id uint) error {
	args := m.Called(ownerID, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}
