package repository

import (
	"context"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
)

// PropertyFilter is the request-scoped set of catalog filters. Nil optional
// fields impose no predicate. Page and Limit are always at least 1.
type PropertyFilter struct {
	Location     *string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType *string
	SortBy       string
	Page         int
	Limit        int
}

// PropertyUpdate carries the mutable fields of a property.
type PropertyUpdate struct {
	Title       string
	Description string
	Price       float64
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user and populates the generated ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their unique username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users ordered by ID ascending.
	List(ctx context.Context) ([]domain.User, error)
}

// PropertyRepository defines persistence operations for property listings.
type PropertyRepository interface {
	// Create inserts a new property and populates the generated ID.
	Create(ctx context.Context, property *domain.Property) error

	// GetByID retrieves a property by ID.
	GetByID(ctx context.Context, id int64) (*domain.Property, error)

	// GetDetail retrieves a property joined with its owner's username.
	GetDetail(ctx context.Context, id int64) (*domain.PropertyDetail, error)

	// List returns properties matching the filter along with the total count
	// of matching rows.
	List(ctx context.Context, filter PropertyFilter) ([]domain.Property, int, error)

	// Update modifies the mutable fields of an existing property.
	Update(ctx context.Context, id int64, update PropertyUpdate) (*domain.Property, error)

	// Delete removes a property by ID.
	Delete(ctx context.Context, id int64) error
}
