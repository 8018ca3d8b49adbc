// Package query compiles listing filter parameters into an
// engine-neutral plan. The repository translates a plan into a MongoDB
// filter; the same predicate also evaluates in memory, which is what
// the newsletter notifier uses to match listings against subscriber
// preferences.
package query

import (
	"strings"

	"dwellio/pkg/model"
)

// Sort fields.
const (
	SortFieldCreatedAt = "created_at"
	SortFieldPrice     = "price"
)

// Sort keys accepted on the wire.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// Price range buckets accepted on the wire.
const (
	PriceUnder500k = "0-500k"
	Price500kTo1m  = "500k-1m"
	Price1mTo2m    = "1m-2m"
	PriceOver2m    = "2m+"
)

type SortSpec struct {
	Field string
	Desc  bool
}

// Predicate is the compiled restriction set. Zero values mean "no
// restriction" for that dimension; price bounds are pointers so an
// absent bound and a zero bound stay distinct.
type Predicate struct {
	PropertyType string
	City         string
	MinBedrooms  *int
	PriceGT      *float64
	PriceLTE     *float64
	SearchTerm   string
}

// Plan is the full compiled query: restrictions, ordering, pagination.
type Plan struct {
	Predicate Predicate
	Sort      SortSpec
	Page      int
	Limit     int
}

// Matches evaluates the predicate against one listing. It implements
// the same semantics the repository expresses in MongoDB: exact type
// match, case-insensitive city substring, minimum bedrooms, half-open
// price buckets, and a case-insensitive search over title, description,
// city and state.
func (p Predicate) Matches(property *model.Property) bool {
	if p.PropertyType != "" && property.PropertyType != p.PropertyType {
		return false
	}
	if p.City != "" && !containsFold(property.Location.City, p.City) {
		return false
	}
	if p.MinBedrooms != nil && property.Bedrooms < *p.MinBedrooms {
		return false
	}
	if p.PriceGT != nil && !(property.Price > *p.PriceGT) {
		return false
	}
	if p.PriceLTE != nil && !(property.Price <= *p.PriceLTE) {
		return false
	}
	if p.SearchTerm != "" {
		if !containsFold(property.Title, p.SearchTerm) &&
			!containsFold(property.Description, p.SearchTerm) &&
			!containsFold(property.Location.City, p.SearchTerm) &&
			!containsFold(property.Location.State, p.SearchTerm) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
