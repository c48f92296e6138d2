// Package aggregate builds paginated results that carry per-item error annotations
// next to the items, so one failing record never fails the whole page.
package aggregate

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ItemError annotates the item at absolute position Index.
type ItemError struct {
	Index   int    `json:"index"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e ItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %s", e.Index, e.Key, e.Message)
}

// Page is one page of items with the total count and the errors of the items it holds.
type Page[T any] struct {
	Items      []T         `json:"items"`
	TotalCount int         `json:"total_count"`
	Offset     int         `json:"offset"`
	Errors     []ItemError `json:"errors"`
}

// Build wraps items read at offset into a Page. errOf returns the error message of an
// item, or "" when the item is healthy.
func Build[T any](items []T, total, offset int, key func(T) string, errOf func(T) string) Page[T] {
	if offset < 0 {
		offset = 0
	}
	if items == nil {
		items = []T{}
	}
	p := Page[T]{
		Items:      items,
		TotalCount: total,
		Offset:     offset,
		Errors:     []ItemError{},
	}
	for i, item := range items {
		msg := errOf(item)
		if msg == "" {
			continue
		}
		p.Errors = append(p.Errors, ItemError{
			Index:   offset + i,
			Key:     key(item),
			Message: msg,
		})
	}
	return p
}

// Err folds the item errors into one error for logging. It is nil for a clean page.
func (p Page[T]) Err() error {
	var result *multierror.Error
	for _, e := range p.Errors {
		result = multierror.Append(result, e)
	}
	return result.ErrorOrNil()
}
