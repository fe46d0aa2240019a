package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Sort orders and limits.
const (
	DefaultLimit     = 0
	MaxLimit         = 10000
	DefaultOffset    = 0
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit      = errors.New("limit must be between 0 and 10000")
	ErrInvalidOffset     = errors.New("offset must be non-negative")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'score:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the sort and window flags of a list command. A zero Limit
// means no limit.
type Params struct {
	Limit     int
	Offset    int
	SortField string
	SortOrder string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		Limit:     DefaultLimit,
		Offset:    DefaultOffset,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks bounds and the sort order.
func (p Params) Validate() error {
	if p.Limit < 0 || p.Limit > MaxLimit {
		return ErrInvalidLimit
	}
	if p.Offset < 0 {
		return ErrInvalidOffset
	}
	if p.SortOrder != "" && p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// An empty string yields no field and the default order.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return "", DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// Apply returns the window [Offset, Offset+Limit) of items. It never
// panics on out-of-range values.
func Apply[T any](p Params, items []T) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}
