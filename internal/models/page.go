package models

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is one slice of an offset-paginated result. Page numbers are
// 1-based and TotalPages is never below 1, even for an empty result.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPage wraps items and fills in the derived page count.
// Nil items become an empty slice so the JSON is [] and not null.
func NewPage[T any](items []T, total int64, page, limit int) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}
}

// TotalPages is ceil(total/limit), floored at 1.
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}

// NormalizePaging clamps page and limit into the accepted range:
// page defaults to 1, limit to DefaultPageLimit and is capped at
// MaxPageLimit. Page is capped so the returned row offset never
// overflows.
func NormalizePaging(page, limit int) (int, int, int) {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	page = min(max(page, 1), math.MaxInt/limit)
	return page, limit, (page - 1) * limit
}
