package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/slimmom/diet-service/internal/core/ports"
)

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	now := time.Now()
	iss := NewJWTIssuer("secret")

	pair, err := iss.Issue("user-1", now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !pair.AccessExpiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected access expiry: %v", pair.AccessExpiresAt)
	}
	if !pair.RefreshExpiresAt.Equal(now.Add(30 * 24 * time.Hour)) {
		t.Fatalf("unexpected refresh expiry: %v", pair.RefreshExpiresAt)
	}

	sub, err := iss.Verify(pair.AccessToken, ports.AccessToken)
	if err != nil || sub != "user-1" {
		t.Fatalf("verify access: sub=%q err=%v", sub, err)
	}
	sub, err = iss.Verify(pair.RefreshToken, ports.RefreshToken)
	if err != nil || sub != "user-1" {
		t.Fatalf("verify refresh: sub=%q err=%v", sub, err)
	}
}

func TestJWTIssuer_TokensAreUnique(t *testing.T) {
	now := time.Now()
	iss := NewJWTIssuer("secret")

	a, _ := iss.Issue("user-1", now)
	b, _ := iss.Issue("user-1", now)
	if a.AccessToken == b.AccessToken || a.RefreshToken == b.RefreshToken {
		t.Fatalf("expected distinct tokens for the same user and instant")
	}
}

func TestJWTIssuer_KindMismatch(t *testing.T) {
	iss := NewJWTIssuer("secret")
	pair, _ := iss.Issue("user-1", time.Now())

	if _, err := iss.Verify(pair.RefreshToken, ports.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected refresh token to be rejected as access token, got %v", err)
	}
	if _, err := iss.Verify(pair.AccessToken, ports.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected access token to be rejected as refresh token, got %v", err)
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuedAt := time.Now()
	clock := issuedAt
	iss := NewJWTIssuer("secret", WithTimeFunc(func() time.Time { return clock }))

	pair, _ := iss.Issue("user-1", issuedAt)
	clock = issuedAt.Add(16 * time.Minute)

	if _, err := iss.Verify(pair.AccessToken, ports.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired access token to fail, got %v", err)
	}
	if _, err := iss.Verify(pair.RefreshToken, ports.RefreshToken); err != nil {
		t.Fatalf("refresh token should still be valid: %v", err)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	pair, _ := NewJWTIssuer("secret").Issue("user-1", time.Now())

	if _, err := NewJWTIssuer("other").Verify(pair.AccessToken, ports.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature failure, got %v", err)
	}
}

func TestJWTIssuer_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "user-1",
		"typ": "access",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTIssuer("secret").Verify(signed, ports.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected HS512 token to be rejected, got %v", err)
	}
}

func TestJWTIssuer_CustomTTL(t *testing.T) {
	now := time.Now()
	pair, _ := NewJWTIssuer("secret", WithTTL(time.Minute, 24*time.Hour)).Issue("u", now)

	if !pair.AccessExpiresAt.Equal(now.Add(time.Minute)) || !pair.RefreshExpiresAt.Equal(now.Add(24*time.Hour)) {
		t.Fatalf("unexpected expiries: %v %v", pair.AccessExpiresAt, pair.RefreshExpiresAt)
	}
}
