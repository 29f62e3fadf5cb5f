package repositories

// AttributeRepository defines owner-scoped data access for recipe attributes
// (tags and ingredients). Every method filters by the owning user.
type AttributeRepository[T any] interface {
	// List returns the owner's attributes ordered by name descending. With
	// assignedOnly set, only attributes linked to at least one of the owner's
	// recipes are returned, each once.
	List(ownerID uint, assignedOnly bool) ([]T, error)
	GetByID(ownerID, id uint) (*T, error)
	// FindOwned returns the subset of ids that exist and belong to ownerID.
	FindOwned(ownerID uint, ids []uint) ([]T, error)
	Create(item *T) error
	Update(item *T) error
	Delete(ownerID, id uint) error
}
