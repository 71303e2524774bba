// internal/service/catalog/filter.go
package catalog

import (
	"strconv"
	"strings"
	"time"

	"motomarket-service/internal/domain/listing"
)

// FilterSet mirrors the search sidebar: one free-form string per facet,
// empty meaning "no constraint". Values arrive straight from query
// parameters, so every predicate must tolerate garbage without panicking.
type FilterSet struct {
	Category     string `form:"category"`
	Location     string `form:"location"`
	PriceMin     string `form:"price_min"`
	PriceMax     string `form:"price_max"`
	YearMin      string `form:"year_min"`
	YearMax      string `form:"year_max"`
	MileageMax   string `form:"mileage_max"`
	EngineMin    string `form:"engine_min"`
	EngineMax    string `form:"engine_max"`
	SellerType   string `form:"seller_type"`
	Fuel         string `form:"fuel"`
	Transmission string `form:"transmission"`
	Condition    string `form:"condition"`
	Brand        string `form:"brand"`
	Model        string `form:"model"`
}

// Matches reports whether one listing satisfies the free-text query and
// every facet in f. The result is the conjunction of the individual
// predicates; an all-empty filter set matches everything. Status is never
// inspected here: callers pre-filter by status when they need to.
func Matches(l listing.Listing, query string, f FilterSet) bool {
	return matchesQuery(l, query) &&
		eqFold(l.Category, f.Category) &&
		containsFold(l.Location, f.Location) &&
		floatGE(l.Price, f.PriceMin) &&
		floatLE(l.Price, f.PriceMax) &&
		yearGE(l.Year, f.YearMin) &&
		yearLE(l.Year, f.YearMax) &&
		intLE(l.Mileage, f.MileageMax) &&
		intGE(l.EngineCapacity, f.EngineMin) &&
		intLE(l.EngineCapacity, f.EngineMax) &&
		eqFold(l.SellerType, f.SellerType) &&
		eqFold(l.FuelType, f.Fuel) &&
		eqFold(l.Transmission, f.Transmission) &&
		eqFold(l.Condition, f.Condition) &&
		eqFold(l.Brand, f.Brand) &&
		containsFold(l.Model, f.Model)
}

// matchesQuery is the free-text predicate: case-insensitive substring
// over the descriptive fields.
func matchesQuery(l listing.Listing, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{l.Title, l.Brand, l.Model, l.Category, l.Location, l.SellerName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func eqFold(value, filter string) bool {
	return filter == "" || strings.EqualFold(value, filter)
}

func containsFold(value, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

// Numeric bounds are inclusive. A bound that does not parse is treated as
// unconstrained rather than failing the whole filter pass.

func floatGE(value float64, bound string) bool {
	b, ok := parseFloat(bound)
	return !ok || value >= b
}

func floatLE(value float64, bound string) bool {
	b, ok := parseFloat(bound)
	return !ok || value <= b
}

func intGE(value int, bound string) bool {
	b, ok := parseInt(bound)
	return !ok || value >= b
}

func intLE(value int, bound string) bool {
	b, ok := parseInt(bound)
	return !ok || value <= b
}

// Year bounds outside the plausible model-year range behave like
// malformed input: the bound is ignored instead of silently emptying the
// result set.
func yearGE(value int, bound string) bool {
	b, ok := parseYearBound(bound)
	return !ok || value >= b
}

func yearLE(value int, bound string) bool {
	b, ok := parseYearBound(bound)
	return !ok || value <= b
}

func parseYearBound(bound string) (int, bool) {
	b, ok := parseInt(bound)
	if !ok {
		return 0, false
	}
	if b < 1990 || b > time.Now().Year()+1 {
		return 0, false
	}
	return b, true
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}
