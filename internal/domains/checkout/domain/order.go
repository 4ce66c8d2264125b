package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer identifies who placed an order. Persisted alongside the order.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// Address is an order's shipping destination.
type Address struct {
	ID           int64
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	Country      string
}

// CardOrder is a placed order. Its cart reference is always re-resolved from
// the store at save time; the caller's embedded cart is never trusted.
type CardOrder struct {
	ID               int64
	Cart             *Cart
	Customer         *Customer
	ShippingAddress  *Address
	OrderDate        time.Time
	ConfirmationSent bool
	ShipMethod       string
	OrderNotes       *string
	Subtotal         decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
}

// Clone returns a deep copy.
func (o *CardOrder) Clone() *CardOrder {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Cart = o.Cart.Clone()
	if o.Customer != nil {
		customer := *o.Customer
		clone.Customer = &customer
	}
	if o.ShippingAddress != nil {
		address := *o.ShippingAddress
		clone.ShippingAddress = &address
	}
	if o.OrderNotes != nil {
		notes := *o.OrderNotes
		clone.OrderNotes = &notes
	}
	return &clone
}
