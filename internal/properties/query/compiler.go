package query

import (
	"fmt"
	"strconv"
	"strings"

	"dwellio/pkg/config"
)

// InvalidFilterError reports a filter value that cannot be interpreted,
// such as a non-numeric bedrooms count.
type InvalidFilterError struct {
	Key   string
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid value %q for filter %q", e.Value, e.Key)
}

// all is the sentinel meaning "no restriction" for a dimension.
const all = "all"

// Compile turns raw query parameters into a plan. Absent keys, empty
// values and the "all" sentinel leave a dimension unrestricted; keys
// the compiler does not recognize are ignored. Page and limit are
// normalized to the canonical default and cap.
func Compile(params map[string]string, page, limit int) (*Plan, error) {
	plan := &Plan{
		Sort:  SortSpec{Field: SortFieldCreatedAt, Desc: true},
		Page:  config.NormalizePage(page),
		Limit: config.NormalizePageLimit(limit),
	}

	for key, value := range params {
		value = strings.TrimSpace(value)
		if value == "" || value == all {
			continue
		}

		switch key {
		case "propertyType":
			plan.Predicate.PropertyType = value

		case "city":
			plan.Predicate.City = value

		case "location":
			// "location" is the public filter key; "city" is kept as an
			// alias and wins when both are sent.
			if plan.Predicate.City == "" {
				plan.Predicate.City = value
			}

		case "bedrooms":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, &InvalidFilterError{Key: key, Value: value}
			}
			plan.Predicate.MinBedrooms = &n

		case "priceRange":
			applyPriceRange(&plan.Predicate, value)

		case "searchTerm":
			plan.Predicate.SearchTerm = value

		case "sortBy":
			plan.Sort = compileSort(value)
		}
	}

	return plan, nil
}

// applyPriceRange maps a bucket key onto half-open price bounds:
// (500k, 1m] style intervals, with the lowest bucket closed at zero.
// Unknown bucket keys restrict nothing.
func applyPriceRange(p *Predicate, bucket string) {
	switch bucket {
	case PriceUnder500k:
		p.PriceLTE = ptr(500_000.0)
	case Price500kTo1m:
		p.PriceGT = ptr(500_000.0)
		p.PriceLTE = ptr(1_000_000.0)
	case Price1mTo2m:
		p.PriceGT = ptr(1_000_000.0)
		p.PriceLTE = ptr(2_000_000.0)
	case PriceOver2m:
		p.PriceGT = ptr(2_000_000.0)
	}
}

func compileSort(key string) SortSpec {
	switch key {
	case SortOldest:
		return SortSpec{Field: SortFieldCreatedAt, Desc: false}
	case SortPriceAsc:
		return SortSpec{Field: SortFieldPrice, Desc: false}
	case SortPriceDesc:
		return SortSpec{Field: SortFieldPrice, Desc: true}
	default:
		return SortSpec{Field: SortFieldCreatedAt, Desc: true}
	}
}

func ptr[T any](v T) *T {
	return &v
}
