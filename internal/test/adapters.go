package test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/virebo/lanthandel/internal/adapter/payment"
	"github.com/virebo/lanthandel/internal/adapter/statuscache"
	"github.com/virebo/lanthandel/internal/domain/model"
)

// ReaperFacadeStub mimics worker interactions with the application facade.
type ReaperFacadeStub struct {
	ReapFn func(context.Context, time.Time, int) (int, error)

	mu    sync.Mutex
	Calls []ReapCall
}

// ReapCall stores information about ReapUnpaid invocations.
type ReapCall struct {
	Cutoff time.Time
	Limit  int
}

func (s *ReaperFacadeStub) ReapUnpaid(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, ReapCall{Cutoff: cutoff, Limit: limit})
	s.mu.Unlock()
	if s.ReapFn != nil {
		return s.ReapFn(ctx, cutoff, limit)
	}
	return 0, nil
}

// CallCount reports how many sweeps ran.
func (s *ReaperFacadeStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// PaymentClientStub simulates the payment provider client.
type PaymentClientStub struct {
	CreateFn func(context.Context, payment.SessionRequest) (*payment.Session, error)
	Requests []payment.SessionRequest
	Session  *payment.Session
	Err      error
}

func (s *PaymentClientStub) CreateCheckoutSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Session != nil {
		return s.Session, nil
	}
	return &payment.Session{ID: "cs_test", URL: "https://pay.example/session"}, nil
}

// PublisherStub records confirmation publishes.
type PublisherStub struct {
	PublishFn func(context.Context, *model.Order) error
	Published []uuid.UUID
	Err       error
}

func (s *PublisherStub) PublishOrderConfirmation(ctx context.Context, order *model.Order) error {
	s.Published = append(s.Published, order.ID)
	if s.PublishFn != nil {
		return s.PublishFn(ctx, order)
	}
	return s.Err
}

// StatusStoreStub is an in-memory statuscache.Store.
type StatusStoreStub struct {
	Seen   map[string]bool
	States map[string]statuscache.OrderState
	Err    error
}

// NewStatusStoreStub constructs the stub with initialized maps.
func NewStatusStoreStub() *StatusStoreStub {
	return &StatusStoreStub{
		Seen:   make(map[string]bool),
		States: make(map[string]statuscache.OrderState),
	}
}

func (s *StatusStoreStub) MarkEventProcessed(ctx context.Context, eventID string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if s.Seen[eventID] {
		return false, nil
	}
	s.Seen[eventID] = true
	return true, nil
}

func (s *StatusStoreStub) ClearEvent(ctx context.Context, eventID string) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Seen, eventID)
	return nil
}

func (s *StatusStoreStub) SetOrderState(ctx context.Context, orderID string, state statuscache.OrderState) error {
	if s.Err != nil {
		return s.Err
	}
	s.States[orderID] = state
	return nil
}

func (s *StatusStoreStub) OrderState(ctx context.Context, orderID string) (*statuscache.OrderState, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if state, ok := s.States[orderID]; ok {
		return &state, nil
	}
	return nil, nil
}

func (s *StatusStoreStub) InvalidateOrder(ctx context.Context, orderID string) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.States, orderID)
	return nil
}

var (
	_ statuscache.Store = (*StatusStoreStub)(nil)
	_ payment.Client    = (*PaymentClientStub)(nil)
)
