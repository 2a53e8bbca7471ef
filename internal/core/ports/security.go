package ports

import "time"

// PasswordHasher is a one-way salted hash with constant-time verification.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never fails on mismatch; it reports false instead.
	Verify(plaintext, hash string) bool
}

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// IssuedTokens is a fresh token pair with the expiries persisted alongside it.
type IssuedTokens struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenIssuer mints and checks signed tokens.
type TokenIssuer interface {
	Issue(userID string, now time.Time) (*IssuedTokens, error)
	// Verify returns the user id the token was issued to.
	Verify(token string, kind TokenKind) (string, error)
}
