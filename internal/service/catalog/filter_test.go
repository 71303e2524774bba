package catalog

import (
	"strconv"
	"testing"
	"time"

	"motomarket-service/internal/domain/listing"

	"github.com/stretchr/testify/assert"
)

func sampleListing() listing.Listing {
	return listing.Listing{
		ID:             "01HZX0",
		Title:          "Honda CBR650R ABS",
		Brand:          "Honda",
		Model:          "CBR650R",
		Category:       "sport",
		Price:          8500,
		Year:           2021,
		Mileage:        12000,
		EngineCapacity: 649,
		FuelType:       "benzina",
		Transmission:   "manuala",
		Condition:      "folosita",
		Location:       "Cluj-Napoca",
		SellerType:     "dealer",
		SellerName:     "Moto Center Cluj",
		Status:         listing.StatusActive,
	}
}

func TestMatchesEmptyFilterSet(t *testing.T) {
	assert.True(t, Matches(sampleListing(), "", FilterSet{}))
}

func TestMatchesIsConjunction(t *testing.T) {
	l := sampleListing()

	// Both facets satisfied.
	assert.True(t, Matches(l, "", FilterSet{Brand: "honda", PriceMax: "9000"}))

	// One facet failing sinks the whole match.
	assert.False(t, Matches(l, "", FilterSet{Brand: "honda", PriceMax: "8000"}))
	assert.False(t, Matches(l, "", FilterSet{Brand: "yamaha", PriceMax: "9000"}))
}

func TestMatchesFreeTextQuery(t *testing.T) {
	l := sampleListing()

	assert.True(t, Matches(l, "cbr", FilterSet{}), "model substring, case-insensitive")
	assert.True(t, Matches(l, "cluj", FilterSet{}), "location and seller name are searchable")
	assert.False(t, Matches(l, "ducati", FilterSet{}))
}

func TestMatchesCategoricalFacets(t *testing.T) {
	l := sampleListing()

	assert.True(t, Matches(l, "", FilterSet{Category: "Sport"}), "category compares fold")
	assert.False(t, Matches(l, "", FilterSet{Category: "touring"}))
	assert.True(t, Matches(l, "", FilterSet{Location: "cluj"}), "location is substring, not equality")
	assert.True(t, Matches(l, "", FilterSet{Model: "650"}), "model is substring")
	assert.True(t, Matches(l, "", FilterSet{SellerType: "dealer", Fuel: "benzina", Transmission: "manuala", Condition: "folosita"}))
}

func TestMatchesNumericBoundsInclusive(t *testing.T) {
	l := sampleListing()

	assert.True(t, Matches(l, "", FilterSet{PriceMin: "8500", PriceMax: "8500"}))
	assert.True(t, Matches(l, "", FilterSet{YearMin: "2021", YearMax: "2021"}))
	assert.True(t, Matches(l, "", FilterSet{MileageMax: "12000"}))
	assert.True(t, Matches(l, "", FilterSet{EngineMin: "649", EngineMax: "649"}))
	assert.False(t, Matches(l, "", FilterSet{MileageMax: "11999"}))
}

func TestMatchesUnparsableBoundIsUnconstrained(t *testing.T) {
	l := sampleListing()

	assert.True(t, Matches(l, "", FilterSet{PriceMin: "abc"}))
	assert.True(t, Matches(l, "", FilterSet{MileageMax: "12,000"}))
	assert.True(t, Matches(l, "", FilterSet{EngineMin: ""}))
}

func TestMatchesImplausibleYearBoundIgnored(t *testing.T) {
	l := sampleListing()

	// A minimum year far in the future would empty the whole result set;
	// it is dropped like malformed input instead.
	future := strconv.Itoa(time.Now().Year() + 5)
	assert.True(t, Matches(l, "", FilterSet{YearMin: future}))
	assert.True(t, Matches(l, "", FilterSet{YearMax: "1200"}))

	// Plausible bounds still constrain.
	assert.False(t, Matches(l, "", FilterSet{YearMin: "2022"}))
}
