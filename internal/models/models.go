package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are sourced entirely from the
// external catalog and never created or mutated locally.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Rating is the aggregate review score carried by the catalog.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// CartItem is one cart line: a snapshot of the product at add time plus
// the requested quantity. ID mirrors the product id; a cart holds at
// most one item per product id.
type CartItem struct {
	ID       int     `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// User is a registered account. Password holds the weak demo checksum,
// never the plaintext.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser is the current-session marker: the user minus the
// password field.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ShippingAddress is the destination captured on the checkout form.
type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Order is one entry in the order log. Orders are append-only: created
// once at checkout and never mutated afterwards.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Order statuses. Status is persisted as given at creation; no
// lifecycle transitions are implemented.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)
