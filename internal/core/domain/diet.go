package domain

import "math"

const (
	MinBloodType = 1
	MaxBloodType = 4
	MaxAge       = 120
)

// DietInput holds the body metrics a diet recommendation is computed from.
type DietInput struct {
	Height        float64
	Age           int
	CurrentWeight float64
	DesiredWeight float64
	BloodType     int
}

// DietAdvice is the outcome of a diet recommendation.
type DietAdvice struct {
	DailyCalories      int      `json:"dailyCalories"`
	NotAllowedProducts []string `json:"notAllowedProducts"`
}

// Validate checks the input ranges. The blood type is checked first so an
// out-of-range blood type is always reported, whatever the other fields hold.
func (in DietInput) Validate() error {
	if in.BloodType < MinBloodType || in.BloodType > MaxBloodType {
		return Validationf("bloodType must be between %d and %d", MinBloodType, MaxBloodType)
	}
	switch {
	case in.Height <= 0:
		return NewValidationError("height must be greater than 0")
	case in.Age < 1 || in.Age > MaxAge:
		return Validationf("age must be between 1 and %d", MaxAge)
	case in.CurrentWeight <= 0:
		return NewValidationError("currentWeight must be greater than 0")
	case in.DesiredWeight <= 0:
		return NewValidationError("desiredWeight must be greater than 0")
	}
	return nil
}

// DailyCalories returns the raw daily calorie target:
//
//	10*cw + 6.25*h - 5*age - 161 - 10*(cw - dw)
func DailyCalories(in DietInput) float64 {
	return 10*in.CurrentWeight +
		6.25*in.Height -
		5*float64(in.Age) -
		161 -
		10*(in.CurrentWeight-in.DesiredWeight)
}

// RoundCalories rounds half up, so 1401.5 becomes 1402 and -0.5 becomes 0.
func RoundCalories(v float64) int {
	return int(math.Floor(v + 0.5))
}
