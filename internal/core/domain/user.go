package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// DietProfile is the body metrics and the advice last computed for a user.
type DietProfile struct {
	Height             float64  `json:"height"`
	Age                int      `json:"age"`
	CurrentWeight      float64  `json:"currentWeight"`
	DesiredWeight      float64  `json:"desiredWeight"`
	BloodType          int      `json:"bloodType"`
	DailyRate          int      `json:"dailyRate"`
	NotAllowedProducts []string `json:"notAllowedProducts"`
}

// User models a registered account.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DietProfile  *DietProfile `json:"userData,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
