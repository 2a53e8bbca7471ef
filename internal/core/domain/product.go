package domain

// ProductTitle holds the localised product names.
type ProductTitle struct {
	EN string `json:"en"`
	RU string `json:"ru,omitempty"`
	UA string `json:"ua,omitempty"`
}

// Product is an entry of the static product catalog.
//
// GroupBloodNotAllowed is indexed by blood type; index 0 is unused.
type Product struct {
	ID                   string       `json:"id"`
	Title                ProductTitle `json:"title"`
	Categories           string       `json:"categories"`
	Weight               float64      `json:"weight"`
	Calories             float64      `json:"calories"`
	GroupBloodNotAllowed [5]bool      `json:"groupBloodNotAllowed"`
}

// NotAllowedFor reports whether the product is excluded for bloodType.
func (p Product) NotAllowedFor(bloodType int) bool {
	if bloodType < MinBloodType || bloodType > MaxBloodType {
		return false
	}
	return p.GroupBloodNotAllowed[bloodType]
}
