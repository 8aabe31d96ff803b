package model

import (
	"time"

	"github.com/google/uuid"
)

// Cart maps product identifiers to desired quantities. Keys are product UUIDs
// in string form so the mapping round-trips through JSON unchanged.
type Cart map[string]int64

// Normalize drops entries with non-positive quantities.
func (c Cart) Normalize() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		if qty > 0 {
			out[id] = qty
		}
	}
	return out
}

// User represents a registered customer. The cart mapping mirrors the
// client-held cart state; last write wins.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Cart         Cart
	CreatedAt    time.Time
}
