package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// defaultRestockQuantity is assigned when a product with an exhausted count is
// flipped back to available without an explicit quantity.
const defaultRestockQuantity = 10

// CatalogUseCase manages the seller-side product catalog.
type CatalogUseCase struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{products: products, logger: logger}
}

// AddProduct validates and stores a new product.
func (u *CatalogUseCase) AddProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.DeriveInStock()

	created, err := u.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	u.logger.Info("product added", slog.String("product", created.ID.String()), slog.String("name", created.Name))
	return created, nil
}

// GetProduct returns one product by id.
func (u *CatalogUseCase) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// ListProducts returns the whole catalog.
func (u *CatalogUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// UpdateProduct replaces the stored product fields.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.ID == uuid.Nil {
		return nil, domainErrors.ErrValidation
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.DeriveInStock()
	return u.products.Update(ctx, product)
}

// ChangeStock applies a seller stock toggle. Marking an exhausted product
// available restocks it to a default count; marking a product unavailable
// zeroes the count. The availability flag always follows the final count.
func (u *CatalogUseCase) ChangeStock(ctx context.Context, id uuid.UUID, inStock bool, quantity int64) (*model.Product, error) {
	if quantity < 0 {
		return nil, domainErrors.ErrValidation
	}
	switch {
	case !inStock:
		quantity = 0
	case quantity == 0:
		quantity = defaultRestockQuantity
	}
	return u.products.SetQuantity(ctx, id, quantity)
}

// DeleteProduct removes a product from the catalog.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("product deleted", slog.String("product", id.String()))
	return nil
}

func validateProduct(product *model.Product) error {
	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Category) == "" {
		return domainErrors.ErrValidation
	}
	if product.Price <= 0 || product.OfferPrice <= 0 || product.OfferPrice > product.Price {
		return domainErrors.ErrValidation
	}
	if product.Quantity < 0 {
		return domainErrors.ErrValidation
	}
	return nil
}
