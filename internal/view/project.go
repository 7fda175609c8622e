// Package view computes read-only projections of a collection: a filter
// predicate followed by a case-insensitive search on the display name.
package view

import "strings"

// Named is anything with a display name that search matches against.
type Named interface {
	DisplayName() string
}

// Categorized is anything that belongs to a category.
type Categorized interface {
	ItemCategory() string
}

// Filter selects items. A nil Filter keeps everything.
type Filter[T any] func(T) bool

// Project applies filter first and query second, preserving order.
// The input slice is never modified and the result never aliases it.
func Project[T Named](items []T, filter Filter[T], query string) []T {
	out := make([]T, 0, len(items))
	q := strings.ToLower(query)
	for _, it := range items {
		if filter != nil && !filter(it) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.DisplayName()), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Category keeps items whose category equals cat. "" and "all" keep everything.
func Category[T Categorized](cat string) Filter[T] {
	if cat == "" || cat == "all" {
		return nil
	}
	return func(it T) bool { return it.ItemCategory() == cat }
}
