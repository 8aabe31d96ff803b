package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// CartUseCase stores the customer's cart server-side so it follows the
// account across devices.
type CartUseCase struct {
	users repository.UserRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(users repository.UserRepository) *CartUseCase {
	return &CartUseCase{users: users}
}

// Cart returns the stored cart for a customer.
func (u *CartUseCase) Cart(ctx context.Context, userID uuid.UUID) (model.Cart, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return model.Cart{}, nil
	}
	return user.Cart, nil
}

// UpdateCart replaces the stored cart with the submitted one. Lines with a
// non-positive quantity are dropped; the last writer wins.
func (u *CartUseCase) UpdateCart(ctx context.Context, userID uuid.UUID, cart model.Cart) (model.Cart, error) {
	cart = cart.Normalize()
	if err := u.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
