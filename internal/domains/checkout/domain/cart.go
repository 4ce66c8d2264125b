package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice   = errors.New("item price must not be negative")
	ErrMissingItemName = errors.New("item name is required")
)

// Item is a line inside a cart. Item ids are unique within their cart, not
// globally.
type Item struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Validate enforces the item invariants.
func (i Item) Validate() error {
	if i.Name == "" {
		return ErrMissingItemName
	}
	if i.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Cart is the shopping cart aggregate. The cart owns its items; PersonID is
// nil for anonymous carts.
type Cart struct {
	ID       string
	PersonID *string
	Items    []Item
}

// AddItem appends the item to the cart.
func (c *Cart) AddItem(item Item) {
	c.Items = append(c.Items, item)
}

// RemoveItem filters out any item with the given id. Removing an absent id is
// a no-op, not an error.
func (c *Cart) RemoveItem(itemID int64) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// UpdateItem replaces the item with a matching id in place, preserving its
// position. An unknown id is a no-op; the item count never changes.
func (c *Cart) UpdateItem(item Item) bool {
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i] = item
			return true
		}
	}
	return false
}

// Item returns the item with the given id, if present.
func (c *Cart) Item(itemID int64) (Item, bool) {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	if c.PersonID != nil {
		person := *c.PersonID
		clone.PersonID = &person
	}
	if len(c.Items) > 0 {
		clone.Items = append([]Item{}, c.Items...)
	}
	return &clone
}
