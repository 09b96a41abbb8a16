// Package listing implements the shared list-screen contract: filtering
// and pagination are pure functions of the full collection and the filter
// state, recomputed per request.
package listing

import "strings"

// DefaultPageSize bounds list responses when the client sends no size
const DefaultPageSize = 10

// MaxPageSize caps client-requested page sizes
const MaxPageSize = 100

// MatchesSearch reports whether value contains query, case-insensitively.
// An empty query matches everything.
func MatchesSearch(value, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

// MatchesFilter reports whether value equals the filter, with an empty
// filter matching everything
func MatchesFilter(value, filter string) bool {
	return filter == "" || value == filter
}

// Quantity buckets used by the inventory list screen
const (
	BucketLow  = "0-50"
	BucketMid  = "51-100"
	BucketHigh = "101+"
)

// QuantityInBucket reports whether qty falls into the named range bucket.
// An empty bucket matches everything; an unknown bucket matches nothing.
func QuantityInBucket(qty float64, bucket string) bool {
	switch bucket {
	case "":
		return true
	case BucketLow:
		return qty >= 0 && qty <= 50
	case BucketMid:
		return qty > 50 && qty <= 100
	case BucketHigh:
		return qty > 100
	}
	return false
}

// Paginate returns the requested window of items plus the page count.
// Pages are 1-based; out-of-range pages yield an empty window.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// Filter returns the items for which keep returns true
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
