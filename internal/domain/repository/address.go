package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/domain/model"
)

// AddressRepository provides access to delivery addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
}
