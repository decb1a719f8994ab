package wishlist

import (
	"errors"
	"strings"
)

const (
	// MaxItems bounds the number of distinct items in one list.
	MaxItems = 20
	// MaxQuantity bounds the quantity of one item.
	MaxQuantity = 99
)

var (
	ErrItemNotFound = errors.New("wishlist item not found")
	ErrMissingID    = errors.New("wishlist item id is required")
	ErrFull         = errors.New("wishlist is full")
)

// Item is a product the shopper saved. Display fields are optional copies of
// what the storefront showed when the item was added.
type Item struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Image     *string `json:"image,omitempty"`
	Price     *int    `json:"price,omitempty"`
	SalePrice *int    `json:"salePrice"`
	Quantity  int     `json:"quantity"`
}

// List is an ordered wishlist. The zero value is an empty list.
type List struct {
	items []Item
}

func NewList(items ...Item) *List {
	l := &List{}
	for _, it := range items {
		_ = l.Add(it)
	}
	return l
}

// Add appends item, or raises the quantity when the id is already listed.
func (l *List) Add(item Item) error {
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		return ErrMissingID
	}
	item.Quantity = clampQuantity(item.Quantity)

	if i := l.index(item.ID); i >= 0 {
		l.items[i].Quantity = clampQuantity(l.items[i].Quantity + item.Quantity)
		return nil
	}
	if len(l.items) >= MaxItems {
		return ErrFull
	}

	l.items = append(l.items, item)
	return nil
}

// SetQuantity overwrites the quantity of one item, clamped to
// [1, MaxQuantity].
func (l *List) SetQuantity(id string, quantity int) error {
	i := l.index(strings.TrimSpace(id))
	if i < 0 {
		return ErrItemNotFound
	}
	l.items[i].Quantity = clampQuantity(quantity)
	return nil
}

func (l *List) Remove(id string) error {
	i := l.index(strings.TrimSpace(id))
	if i < 0 {
		return ErrItemNotFound
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// Items returns a copy of the list in insertion order.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Count is the number of distinct items.
func (l *List) Count() int {
	return len(l.items)
}

func (l *List) index(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// clampQuantity keeps q in [1, MaxQuantity]. Both operands of a merge are
// clamped first, so their sum cannot overflow.
func clampQuantity(q int) int {
	return max(1, min(q, MaxQuantity))
}
