package ports

import (
	"context"
	"time"

	"github.com/slimmom/diet-service/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateDietProfile overwrites the profile and stamps updatedAt in a
	// single document update.
	UpdateDietProfile(ctx context.Context, id string, profile domain.DietProfile, updatedAt time.Time) (*domain.User, error)
	// ListCreatedBetween returns users whose creation time lies in [from, to].
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.User, error)
}
