// Package data describes paged, sorted read requests shared by the store, services and views.
package data

import (
	"errors"
	"fmt"
)

// MaxTake bounds a single page.
const MaxTake = 1000

var (
	ErrInvalidPaging  = errors.New("invalid paging")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// SortKey names a sortable field. Each entity whitelists its own keys.
type SortKey string

const (
	CustomerCreatedOn      SortKey = "created_on"
	CustomerChildrenAtHome SortKey = "children_at_home"
	CustomerLastName       SortKey = "last_name"

	OrderDate  SortKey = "order_date"
	OrderTotal SortKey = "total"

	ProductStockUnits SortKey = "stock_units"
	ProductListPrice  SortKey = "list_price"
	ProductName       SortKey = "name"
)

// SortSpec is a key plus direction.
type SortSpec struct {
	Key        SortKey
	Descending bool
}

// Desc is shorthand for a descending sort on key.
func Desc(key SortKey) SortSpec { return SortSpec{Key: key, Descending: true} }

// Asc is shorthand for an ascending sort on key.
func Asc(key SortKey) SortSpec { return SortSpec{Key: key} }

// Reverse flips the direction.
func (s SortSpec) Reverse() SortSpec {
	s.Descending = !s.Descending
	return s
}

func (s SortSpec) String() string {
	if s.Key == "" {
		return "default"
	}
	if s.Descending {
		return string(s.Key) + " desc"
	}
	return string(s.Key) + " asc"
}

// Request is a paged read. A zero Sort means the store's default order.
type Request struct {
	Skip  int
	Take  int
	Sort  SortSpec
	Query string
}

// ValidatePaging checks skip/take bounds.
func ValidatePaging(skip, take int) error {
	if skip < 0 {
		return fmt.Errorf("%w: skip %d < 0", ErrInvalidPaging, skip)
	}
	if take <= 0 || take > MaxTake {
		return fmt.Errorf("%w: take %d outside 1..%d", ErrInvalidPaging, take, MaxTake)
	}
	return nil
}
