package models

// DefaultPageSize is the number of countries shown per page of the full list.
const DefaultPageSize = 20

// Paginate returns the first pages*size items and whether more remain.
// A non-positive size disables paging.
func Paginate[T any](items []T, pages, size int) ([]T, bool) {
	if size <= 0 {
		return items, false
	}
	if pages < 1 {
		pages = 1
	}
	n := pages * size
	if n >= len(items) {
		return items, false
	}
	return items[:n], true
}
