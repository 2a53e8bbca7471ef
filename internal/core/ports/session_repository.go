package ports

import (
	"context"

	"github.com/slimmom/diet-service/internal/core/domain"
)

// SessionRepository persists issued sessions. Every lookup returns
// domain.ErrSessionNotFound when nothing matches; deletes are idempotent.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	FindByAccessToken(ctx context.Context, accessToken string) (*domain.Session, error)
	// ConsumeByRefreshToken atomically removes and returns the session holding
	// refreshToken, so a refresh token can be redeemed at most once.
	ConsumeByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByRefreshToken(ctx context.Context, refreshToken string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
