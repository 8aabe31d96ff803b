package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Place reserves stock for every line item and creates the order in a
	// single transaction. Any missing product or stock shortfall rolls the
	// whole placement back.
	Place(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	UpdateCODStatus(ctx context.Context, id uuid.UUID, cod model.CODStatus, status model.OrderStatus, isPaid bool) (*model.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
	SetSessionID(ctx context.Context, id uuid.UUID, sessionID string) error
	// Delete restores line-item quantities to their products and removes the
	// order. Products deleted in the interim are skipped.
	Delete(ctx context.Context, id uuid.UUID) error
	// ReapUnpaid cancels online orders still awaiting payment that were created
	// before the cutoff: stock is restored and the orders removed in one
	// transaction. Returns the reaped orders.
	ReapUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}
