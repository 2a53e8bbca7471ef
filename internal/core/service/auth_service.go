package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/slimmom/diet-service/internal/core/domain"
	"github.com/slimmom/diet-service/internal/core/ports"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var validate = validator.New(validator.WithRequiredStructEnabled())

// AuthService implements registration and the session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	log      zerolog.Logger
	now      func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithClock replaces the time source used for expiries.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("name, email and password are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, domain.NewValidationError("email must be a valid email")
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies the credentials, drops every existing session of the user
// and issues a new one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.sessions.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("login: drop sessions: %w", err)
	}

	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("session issued")
	return pairOf(session), nil
}

// Refresh redeems a refresh token for a new session. The old session is
// consumed first, so the same refresh token never works twice.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.tokens.Verify(refreshToken, ports.RefreshToken); err != nil {
		return nil, domain.ErrUnauthorized
	}

	old, err := s.sessions.ConsumeByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if !old.RefreshValidAt(s.now()) {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.openSession(ctx, old.UserID)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	s.log.Info().
		Str("user_id", old.UserID).
		Str("old_session_id", old.ID).
		Str("session_id", session.ID).
		Msg("session rotated")
	return pairOf(session), nil
}

// Logout ends a session. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, in ports.LogoutInput) error {
	var err error
	switch {
	case in.RefreshToken != "":
		err = s.sessions.DeleteByRefreshToken(ctx, in.RefreshToken)
	case in.SessionID != "":
		err = s.sessions.DeleteByID(ctx, in.SessionID)
	default:
		return nil
	}
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer access token to the owning user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error) {
	userID, err := s.tokens.Verify(accessToken, ports.AccessToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.FindByAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if session.UserID != userID || !session.AccessValidAt(s.now()) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return &domain.Principal{User: user, SessionID: session.ID}, nil
}

// UsersCreatedOn lists the users registered on the UTC calendar day of day.
func (s *AuthService) UsersCreatedOn(ctx context.Context, day time.Time) ([]*domain.User, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

	users, err := s.users.ListCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("users created on %s: %w", start.Format(time.DateOnly), err)
	}
	return users, nil
}

func (s *AuthService) openSession(ctx context.Context, userID string) (*domain.Session, error) {
	now := s.now().UTC()
	issued, err := s.tokens.Issue(userID, now)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	session, err := s.sessions.Create(ctx, &domain.Session{
		UserID:                 userID,
		AccessToken:            issued.AccessToken,
		RefreshToken:           issued.RefreshToken,
		AccessTokenValidUntil:  issued.AccessExpiresAt,
		RefreshTokenValidUntil: issued.RefreshExpiresAt,
		CreatedAt:              now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func pairOf(s *domain.Session) *domain.TokenPair {
	return &domain.TokenPair{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
