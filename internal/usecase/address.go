package usecase

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// AddressUseCase manages customer delivery addresses.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

// AddAddress validates and stores a delivery address for the customer.
func (u *AddressUseCase) AddAddress(ctx context.Context, userID uuid.UUID, address *model.Address) (*model.Address, error) {
	if missing := address.MissingFields(); len(missing) > 0 {
		return nil, &domainErrors.MissingFieldsError{Fields: missing}
	}
	address.UserID = userID
	return u.addresses.Create(ctx, address)
}

// ListAddresses returns every address the customer has stored.
func (u *AddressUseCase) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, userID)
}
