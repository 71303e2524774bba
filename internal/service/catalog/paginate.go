// internal/service/catalog/paginate.go
package catalog

import "motomarket-service/internal/domain/listing"

// Paginate derives the visible window from a filtered, ordered sequence.
// Pages are 1-based; a page below 1 is treated as 1 and a page past the
// end yields an empty slice (callers reset to page 1 whenever the filter
// set changes). Every item appears on exactly one page.
func Paginate(items []listing.Listing, pageSize, page int) (pageItems []listing.Listing, totalPages int) {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	totalPages = (len(items) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
