package ports

import (
	"context"
	"time"

	"github.com/slimmom/diet-service/internal/core/domain"
)

// LogoutInput identifies the session to end. RefreshToken takes precedence
// over SessionID when both are set.
type LogoutInput struct {
	RefreshToken string
	SessionID    string
}

// Authenticator resolves an access token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error)
}

// AuthService is the session lifecycle: registration, login, rotation, logout.
type AuthService interface {
	Authenticator
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Logout(ctx context.Context, in LogoutInput) error
	UsersCreatedOn(ctx context.Context, day time.Time) ([]*domain.User, error)
}
