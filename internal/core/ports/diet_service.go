package ports

import (
	"context"

	"github.com/slimmom/diet-service/internal/core/domain"
)

// ProductCatalog is the read-only product data set.
type ProductCatalog interface {
	// NotAllowedCategories returns the unique categories of the products
	// excluded for bloodType, in catalog order.
	NotAllowedCategories(bloodType int) []string
	Search(query string) []domain.Product
}

// DietService computes diet advice and optionally stores it on the user.
type DietService interface {
	Advise(ctx context.Context, in domain.DietInput) (*domain.DietAdvice, error)
	AdviseAndSave(ctx context.Context, userID string, in domain.DietInput) (*domain.DietAdvice, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}
