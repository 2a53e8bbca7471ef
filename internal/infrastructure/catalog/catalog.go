// Package catalog holds the static product data set the diet advice is
// filtered against. The data set is embedded in the binary, parsed once per
// process and never mutated afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/slimmom/diet-service/internal/core/domain"
)

//go:embed products.json
var embeddedProducts []byte

var loadEmbedded = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embeddedProducts)
})

// Catalog is an immutable, read-only product list.
type Catalog struct {
	products []domain.Product
}

// Embedded returns the process-wide catalog built from the embedded data.
func Embedded() (*Catalog, error) {
	return loadEmbedded()
}

// New wraps products in a Catalog. The slice is copied.
func New(products []domain.Product) *Catalog {
	return &Catalog{products: append([]domain.Product(nil), products...)}
}

// Parse decodes a JSON product array. Each element is read as MongoDB
// Extended JSON, so exported documents load as they are.
func Parse(data []byte) (*Catalog, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(raw))
	for i, elem := range raw {
		var doc productDoc
		if err := bson.UnmarshalExtJSON(elem, false, &doc); err != nil {
			return nil, fmt.Errorf("catalog: product %d: %w", i, err)
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("catalog: product %d: %w", i, err)
		}
		products = append(products, p)
	}
	return &Catalog{products: products}, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) NotAllowedCategories(bloodType int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if !p.NotAllowedFor(bloodType) {
			continue
		}
		if _, dup := seen[p.Categories]; dup {
			continue
		}
		seen[p.Categories] = struct{}{}
		out = append(out, p.Categories)
	}
	return out
}

// Search returns the products whose English title contains query, ignoring case.
func (c *Catalog) Search(query string) []domain.Product {
	q := strings.ToLower(query)
	var out []domain.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Title.EN), q) {
			out = append(out, p)
		}
	}
	return out
}

// productDoc mirrors the exported document layout, where _id is either a
// plain hex string or an ObjectID and index 0 of groupBloodNotAllowed is null.
type productDoc struct {
	ID                   bson.RawValue `bson:"_id"`
	Title                titleDoc      `bson:"title"`
	Categories           string        `bson:"categories"`
	Weight               float64       `bson:"weight"`
	Calories             float64       `bson:"calories"`
	GroupBloodNotAllowed []*bool       `bson:"groupBloodNotAllowed"`
}

type titleDoc struct {
	EN string `bson:"en"`
	RU string `bson:"ru"`
	UA string `bson:"ua"`
}

func (d productDoc) toDomain() (domain.Product, error) {
	if d.Title.EN == "" {
		return domain.Product{}, errors.New("no english title")
	}

	var id string
	switch d.ID.Type {
	case bson.TypeObjectID:
		id = d.ID.ObjectID().Hex()
	case bson.TypeString:
		id = d.ID.StringValue()
	default:
		return domain.Product{}, fmt.Errorf("unsupported _id type %s", d.ID.Type)
	}

	p := domain.Product{
		ID:         id,
		Title:      domain.ProductTitle{EN: d.Title.EN, RU: d.Title.RU, UA: d.Title.UA},
		Categories: d.Categories,
		Weight:     d.Weight,
		Calories:   d.Calories,
	}
	for i, v := range d.GroupBloodNotAllowed {
		if i >= len(p.GroupBloodNotAllowed) {
			break
		}
		p.GroupBloodNotAllowed[i] = v != nil && *v
	}
	return p, nil
}
