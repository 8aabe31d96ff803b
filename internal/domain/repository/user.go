package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/domain/model"
)

// UserRepository describes persistence operations for customers.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateCart(ctx context.Context, userID uuid.UUID, cart model.Cart) error
}
