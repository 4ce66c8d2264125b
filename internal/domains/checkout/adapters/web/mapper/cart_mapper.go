// Package mapper translates between the store wire payloads and the checkout
// domain. The HTTP clients reuse these types so both sides of the wire agree
// on the shape.
package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pioneercards/storefront/internal/domains/checkout/domain"
)

// Item is the wire representation of a cart line.
type Item struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Cart is the wire representation of a shopping cart.
type Cart struct {
	ID       string  `json:"id"`
	PersonID *string `json:"personId,omitempty"`
	Items    []Item  `json:"items"`
}

// Customer mirrors the customer block on an order payload.
type Customer struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Address mirrors the shipping address block on an order payload.
type Address struct {
	ID           int64  `json:"id,omitempty"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
}

// Order is the wire representation of a card order.
type Order struct {
	ID               int64           `json:"id,omitempty"`
	Cart             *Cart           `json:"cart,omitempty"`
	Customer         *Customer       `json:"customer,omitempty"`
	ShippingAddress  *Address        `json:"shippingAddress,omitempty"`
	OrderDate        time.Time       `json:"orderDate"`
	ConfirmationSent bool            `json:"confirmationSent"`
	ShipMethod       string          `json:"shipMethod,omitempty"`
	OrderNotes       *string         `json:"orderNotes,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
}

// ToDomainItem maps a wire item into the domain.
func ToDomainItem(input Item) domain.Item {
	return domain.Item{ID: input.ID, Name: input.Name, Price: input.Price, Quantity: input.Quantity}
}

// FromDomainItem maps a domain item onto the wire.
func FromDomainItem(item domain.Item) Item {
	return Item{ID: item.ID, Name: item.Name, Price: item.Price, Quantity: item.Quantity}
}

// ToDomainCart maps a wire cart into the domain aggregate.
func ToDomainCart(input Cart) *domain.Cart {
	cart := &domain.Cart{ID: input.ID, PersonID: input.PersonID}
	for _, item := range input.Items {
		cart.AddItem(ToDomainItem(item))
	}
	return cart
}

// FromDomainCart maps a domain cart onto the wire. Items is always a JSON
// array, never null.
func FromDomainCart(cart *domain.Cart) Cart {
	out := Cart{ID: cart.ID, PersonID: cart.PersonID, Items: make([]Item, 0, len(cart.Items))}
	for _, item := range cart.Items {
		out.Items = append(out.Items, FromDomainItem(item))
	}
	return out
}

// FromDomainCarts maps a cart list onto the wire.
func FromDomainCarts(carts []*domain.Cart) []Cart {
	out := make([]Cart, 0, len(carts))
	for _, cart := range carts {
		out = append(out, FromDomainCart(cart))
	}
	return out
}

// ToDomainOrder maps a wire order into the domain aggregate.
func ToDomainOrder(input Order) *domain.CardOrder {
	order := &domain.CardOrder{
		ID:               input.ID,
		OrderDate:        input.OrderDate,
		ConfirmationSent: input.ConfirmationSent,
		ShipMethod:       input.ShipMethod,
		OrderNotes:       input.OrderNotes,
		Subtotal:         input.Subtotal,
		Tax:              input.Tax,
		Total:            input.Total,
	}
	if input.Cart != nil {
		order.Cart = ToDomainCart(*input.Cart)
	}
	if input.Customer != nil {
		order.Customer = &domain.Customer{
			ID:        input.Customer.ID,
			FirstName: input.Customer.FirstName,
			LastName:  input.Customer.LastName,
			Email:     input.Customer.Email,
		}
	}
	if input.ShippingAddress != nil {
		order.ShippingAddress = &domain.Address{
			ID:           input.ShippingAddress.ID,
			AddressLine1: input.ShippingAddress.AddressLine1,
			AddressLine2: input.ShippingAddress.AddressLine2,
			City:         input.ShippingAddress.City,
			State:        input.ShippingAddress.State,
			ZipCode:      input.ShippingAddress.ZipCode,
			Country:      input.ShippingAddress.Country,
		}
	}
	return order
}

// FromDomainOrder maps a domain order onto the wire.
func FromDomainOrder(order *domain.CardOrder) Order {
	out := Order{
		ID:               order.ID,
		OrderDate:        order.OrderDate,
		ConfirmationSent: order.ConfirmationSent,
		ShipMethod:       order.ShipMethod,
		OrderNotes:       order.OrderNotes,
		Subtotal:         order.Subtotal,
		Tax:              order.Tax,
		Total:            order.Total,
	}
	if order.Cart != nil {
		cart := FromDomainCart(order.Cart)
		out.Cart = &cart
	}
	if order.Customer != nil {
		out.Customer = &Customer{
			ID:        order.Customer.ID,
			FirstName: order.Customer.FirstName,
			LastName:  order.Customer.LastName,
			Email:     order.Customer.Email,
		}
	}
	if order.ShippingAddress != nil {
		out.ShippingAddress = &Address{
			ID:           order.ShippingAddress.ID,
			AddressLine1: order.ShippingAddress.AddressLine1,
			AddressLine2: order.ShippingAddress.AddressLine2,
			City:         order.ShippingAddress.City,
			State:        order.ShippingAddress.State,
			ZipCode:      order.ShippingAddress.ZipCode,
			Country:      order.ShippingAddress.Country,
		}
	}
	return out
}
