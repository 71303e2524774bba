package catalog

import (
	"fmt"
	"testing"

	"motomarket-service/internal/domain/listing"

	"github.com/stretchr/testify/assert"
)

func makeListings(n int) []listing.Listing {
	out := make([]listing.Listing, n)
	for i := range out {
		out[i] = listing.Listing{ID: fmt.Sprintf("L%03d", i), Status: listing.StatusActive}
	}
	return out
}

func TestPaginateTotalPagesRoundsUp(t *testing.T) {
	items := makeListings(25)

	page, total := Paginate(items, 10, 1)
	assert.Len(t, page, 10)
	assert.Equal(t, 3, total)

	page, _ = Paginate(items, 10, 3)
	assert.Len(t, page, 5, "last page holds the remainder")
}

func TestPaginateEveryItemExactlyOnce(t *testing.T) {
	items := makeListings(25)

	seen := map[string]int{}
	for p := 1; p <= 3; p++ {
		page, _ := Paginate(items, 10, p)
		for _, l := range page {
			seen[l.ID]++
		}
	}

	assert.Len(t, seen, 25)
	for id, count := range seen {
		assert.Equal(t, 1, count, "item %s must appear on exactly one page", id)
	}
}

func TestPaginatePastEndIsEmpty(t *testing.T) {
	items := makeListings(25)

	page, total := Paginate(items, 10, 4)
	assert.Empty(t, page)
	assert.Equal(t, 3, total)
}

func TestPaginatePageBelowOne(t *testing.T) {
	items := makeListings(5)

	page, total := Paginate(items, 10, 0)
	assert.Len(t, page, 5)
	assert.Equal(t, 1, total)
}

func TestPaginateEmptyInput(t *testing.T) {
	page, total := Paginate(nil, 10, 1)
	assert.Empty(t, page)
	assert.Zero(t, total)
}
