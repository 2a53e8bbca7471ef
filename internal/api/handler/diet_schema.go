package handler

import "github.com/slimmom/diet-service/internal/core/domain"

type dietRequest struct {
	Height        float64 `json:"height"        validate:"required,gt=0"`
	Age           int     `json:"age"           validate:"required,min=1,max=120"`
	CurrentWeight float64 `json:"currentWeight" validate:"required,gt=0"`
	DesiredWeight float64 `json:"desiredWeight" validate:"required,gt=0"`
	BloodType     int     `json:"bloodType"     validate:"required,min=1,max=4"`
}

func (r dietRequest) toInput() domain.DietInput {
	return domain.DietInput{
		Height:        r.Height,
		Age:           r.Age,
		CurrentWeight: r.CurrentWeight,
		DesiredWeight: r.DesiredWeight,
		BloodType:     r.BloodType,
	}
}
