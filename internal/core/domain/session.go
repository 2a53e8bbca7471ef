package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrUnauthorized = errors.New("not authorized")

// Session binds a user to a live access/refresh token pair.
type Session struct {
	ID                     string
	UserID                 string
	AccessToken            string
	RefreshToken           string
	AccessTokenValidUntil  time.Time
	RefreshTokenValidUntil time.Time
	CreatedAt              time.Time
}

// AccessValidAt reports whether the access token is still usable at t.
func (s *Session) AccessValidAt(t time.Time) bool {
	return t.Before(s.AccessTokenValidUntil)
}

// RefreshValidAt reports whether the refresh token is still usable at t.
func (s *Session) RefreshValidAt(t time.Time) bool {
	return t.Before(s.RefreshTokenValidUntil)
}

// TokenPair is what a client receives after login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
