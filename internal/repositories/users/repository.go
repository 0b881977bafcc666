package users

import (
	"context"

	"github.com/melodica-app/melodica/internal/models"
)

// Repository describes persistence operations for user records.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Create inserts a new record and returns it with the assigned id.
	// Returns common.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the record with the given email, or
	// common.ErrNotFound. The comparison is raw and case-sensitive.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the record with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// UpdateEmail replaces the record's email. Returns common.ErrValidation
	// unless newEmail matches the minimal local@domain.tld shape, and
	// common.ErrDuplicateEmail when another record already holds it.
	UpdateEmail(ctx context.Context, id int64, newEmail string) error

	// UpdateUsername replaces the record's username. Returns
	// common.ErrValidation on an empty or out-of-alphabet name.
	UpdateUsername(ctx context.Context, id int64, newUsername string) error

	// UpdatePassword replaces hash and salt together. Both columns change in
	// a single statement, so a reader can never observe one without the other.
	UpdatePassword(ctx context.Context, id int64, newHash, newSalt string) error
}
