package model

import (
	"time"

	"github.com/google/uuid"
)

// Product describes a purchasable catalog item.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description []string
	Category    string
	Price       int64
	OfferPrice  int64
	Quantity    int64
	InStock     bool
	Image       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeriveInStock recomputes the availability flag from the stock count.
// The flag is never set independently of quantity.
func (p *Product) DeriveInStock() {
	p.InStock = p.Quantity > 0
}
