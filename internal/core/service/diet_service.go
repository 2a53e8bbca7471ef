package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/slimmom/diet-service/internal/core/domain"
	"github.com/slimmom/diet-service/internal/core/ports"
)

type DietService struct {
	users   ports.UserRepository
	catalog ports.ProductCatalog
	log     zerolog.Logger
	now     func() time.Time
}

// DietOption customises a DietService.
type DietOption func(*DietService)

// WithDietClock replaces the time source used to stamp profile updates.
func WithDietClock(now func() time.Time) DietOption {
	return func(s *DietService) { s.now = now }
}

func NewDietService(users ports.UserRepository, catalog ports.ProductCatalog, log zerolog.Logger, opts ...DietOption) *DietService {
	s := &DietService{users: users, catalog: catalog, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Advise computes the daily calorie target and the excluded product
// categories without touching storage.
func (s *DietService) Advise(_ context.Context, in domain.DietInput) (*domain.DietAdvice, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	notAllowed := s.catalog.NotAllowedCategories(in.BloodType)
	if notAllowed == nil {
		notAllowed = []string{}
	}
	return &domain.DietAdvice{
		DailyCalories:      domain.RoundCalories(domain.DailyCalories(in)),
		NotAllowedProducts: notAllowed,
	}, nil
}

// AdviseAndSave computes the advice and stores it, together with the input
// metrics, as the user's diet profile.
func (s *DietService) AdviseAndSave(ctx context.Context, userID string, in domain.DietInput) (*domain.DietAdvice, error) {
	advice, err := s.Advise(ctx, in)
	if err != nil {
		return nil, err
	}

	_, err = s.users.UpdateDietProfile(ctx, userID, domain.DietProfile{
		Height:             in.Height,
		Age:                in.Age,
		CurrentWeight:      in.CurrentWeight,
		DesiredWeight:      in.DesiredWeight,
		BloodType:          in.BloodType,
		DailyRate:          advice.DailyCalories,
		NotAllowedProducts: advice.NotAllowedProducts,
	}, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("save diet profile: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Int("blood_type", in.BloodType).
		Int("daily_rate", advice.DailyCalories).
		Msg("diet profile updated")
	return advice, nil
}

// SearchProducts matches query against the English product titles.
// An empty query yields an empty result.
func (s *DietService) SearchProducts(_ context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Product{}, nil
	}
	found := s.catalog.Search(query)
	if found == nil {
		found = []domain.Product{}
	}
	return found, nil
}
