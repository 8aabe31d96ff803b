package dto

import (
	"time"

	"github.com/virebo/lanthandel/internal/domain/model"
)

// ProductRequest carries seller-submitted product fields. ID is required for
// updates and ignored on add.
type ProductRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description []string `json:"description"`
	Category    string   `json:"category"`
	Price       int64    `json:"price"`
	OfferPrice  int64    `json:"offerPrice"`
	Quantity    int64    `json:"quantity"`
	Image       []string `json:"image"`
}

// StockRequest toggles product availability.
type StockRequest struct {
	ID       string `json:"id"`
	InStock  bool   `json:"inStock"`
	Quantity int64  `json:"quantity"`
}

// ProductDeleteRequest names the product to remove.
type ProductDeleteRequest struct {
	ID string `json:"id"`
}

// ProductPayload is the catalog item shape returned to the UI.
type ProductPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description []string  `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	OfferPrice  int64     `json:"offerPrice"`
	Quantity    int64     `json:"quantity"`
	InStock     bool      `json:"inStock"`
	Image       []string  `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductResponse wraps a single product result.
type ProductResponse struct {
	Response
	Product *ProductPayload `json:"product,omitempty"`
}

// ProductListResponse wraps catalog listings.
type ProductListResponse struct {
	Response
	Products []ProductPayload `json:"products"`
}

// NewProductPayload maps a catalog product to its UI shape.
func NewProductPayload(p *model.Product) *ProductPayload {
	return &ProductPayload{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		OfferPrice:  p.OfferPrice,
		Quantity:    p.Quantity,
		InStock:     p.InStock,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
