package test

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[uuid.UUID]*model.User
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[uuid.UUID]*model.User),
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, Cart: model.Cart{}}
	s.ByEmail[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateCart replaces the stored cart for the user.
func (s *UserRepositoryStub) UpdateCart(ctx context.Context, userID uuid.UUID, cart model.Cart) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Cart = cart
	return nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	Products map[uuid.UUID]*model.Product
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized map.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[uuid.UUID]*model.Product)}
}

// Add seeds a product and returns its generated id.
func (s *ProductRepositoryStub) Add(product model.Product) uuid.UUID {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.InStock = product.Quantity > 0
	s.Products[product.ID] = &product
	return product.ID
}

func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	created := *product
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	s.Products[created.ID] = &created
	return &created, nil
}

func (s *ProductRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		return product, nil
	}
	return nil, &domainErrors.ProductNotFoundError{ProductID: id.String()}
}

func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Products))
	for _, product := range s.Products {
		out = append(out, *product)
	}
	return out, nil
}

func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return nil, &domainErrors.ProductNotFoundError{ProductID: product.ID.String()}
	}
	updated := *product
	s.Products[product.ID] = &updated
	return &updated, nil
}

func (s *ProductRepositoryStub) SetQuantity(ctx context.Context, id uuid.UUID, quantity int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	product, ok := s.Products[id]
	if !ok {
		return nil, &domainErrors.ProductNotFoundError{ProductID: id.String()}
	}
	product.Quantity = quantity
	product.InStock = quantity > 0
	return product, nil
}

func (s *ProductRepositoryStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// AddressRepositoryStub stores addresses in-memory for tests.
type AddressRepositoryStub struct {
	Addresses map[uuid.UUID]*model.Address
	Err       error
}

// NewAddressRepositoryStub constructs stub repository with initialized map.
func NewAddressRepositoryStub() *AddressRepositoryStub {
	return &AddressRepositoryStub{Addresses: make(map[uuid.UUID]*model.Address)}
}

// Add seeds an address and returns its generated id.
func (s *AddressRepositoryStub) Add(address model.Address) uuid.UUID {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	s.Addresses[address.ID] = &address
	return address.ID
}

func (s *AddressRepositoryStub) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	created := *address
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	s.Addresses[created.ID] = &created
	return &created, nil
}

func (s *AddressRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if address, ok := s.Addresses[id]; ok {
		return address, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Address
	for _, address := range s.Addresses {
		if address.UserID == userID {
			out = append(out, *address)
		}
	}
	return out, nil
}

// OrderRepositoryStub allows tests to customize behaviour. Place mimics the
// real contract against the Products stub when one is attached: it checks
// stock, snapshots names and prices, and computes the taxed amount.
type OrderRepositoryStub struct {
	Products *ProductRepositoryStub

	PlaceFn      func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn    func(context.Context, uuid.UUID) (*model.Order, error)
	MarkPaidFn   func(context.Context, uuid.UUID, model.OrderStatus) error
	DeleteFn     func(context.Context, uuid.UUID) error
	ReapUnpaidFn func(context.Context, time.Time, int) ([]model.Order, error)

	Orders      map[uuid.UUID]*model.Order
	Deleted     []uuid.UUID
	SessionSets map[uuid.UUID]string
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		Orders:      make(map[uuid.UUID]*model.Order),
		SessionSets: make(map[uuid.UUID]string),
	}
}

func (s *OrderRepositoryStub) Place(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, order)
	}

	placed := *order
	placed.ID = uuid.New()
	placed.CreatedAt = time.Now()

	if s.Products != nil {
		var subtotal int64
		items := make([]model.OrderItem, len(order.Items))
		copy(items, order.Items)
		for i, item := range items {
			product, ok := s.Products.Products[item.ProductID]
			if !ok {
				return nil, &domainErrors.ProductNotFoundError{ProductID: item.ProductID.String()}
			}
			if product.Quantity < item.Quantity {
				return nil, &domainErrors.InsufficientStockError{ProductName: product.Name, Available: product.Quantity}
			}
			product.Quantity -= item.Quantity
			product.InStock = product.Quantity > 0
			items[i].Name = product.Name
			items[i].UnitPrice = product.OfferPrice
			subtotal += product.OfferPrice * item.Quantity
		}
		placed.Items = items
		placed.Amount = model.ApplyTax(subtotal)
		if placed.COD != nil {
			cod := *placed.COD
			cod.Amount = placed.Amount
			placed.COD = &cod
		}
	}

	s.Orders[placed.ID] = &placed
	return &placed, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, order := range s.Orders {
		if order.UserID == userID && (order.PaymentType == model.PaymentTypeCOD || order.IsPaid) {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, order := range s.Orders {
		if order.PaymentType == model.PaymentTypeCOD || order.IsPaid {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = status
	return order, nil
}

func (s *OrderRepositoryStub) UpdateCODStatus(ctx context.Context, id uuid.UUID, cod model.CODStatus, status model.OrderStatus, isPaid bool) (*model.Order, error) {
	order, ok := s.Orders[id]
	if !ok || order.COD == nil {
		return nil, domainErrors.ErrNotFound
	}
	order.COD.Status = cod
	order.Status = status
	order.IsPaid = isPaid
	return order, nil
}

func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id, status)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.IsPaid = true
	order.Status = status
	return nil
}

func (s *OrderRepositoryStub) SetSessionID(ctx context.Context, id uuid.UUID, sessionID string) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.SessionID = sessionID
	s.SessionSets[id] = sessionID
	return nil
}

// Delete restocks against the attached Products stub, mirroring the real
// repository contract.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if s.Products != nil {
		for _, item := range order.Items {
			if product, ok := s.Products.Products[item.ProductID]; ok {
				product.Quantity += item.Quantity
				product.InStock = product.Quantity > 0
			}
		}
	}
	delete(s.Orders, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

func (s *OrderRepositoryStub) ReapUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.ReapUnpaidFn != nil {
		return s.ReapUnpaidFn(ctx, cutoff, limit)
	}
	var reaped []model.Order
	for id, order := range s.Orders {
		if len(reaped) >= limit {
			break
		}
		if order.PaymentType == model.PaymentTypeOnline && !order.IsPaid &&
			order.Status == model.OrderStatusAwaitingPayment && order.CreatedAt.Before(cutoff) {
			reaped = append(reaped, *order)
			_ = s.Delete(ctx, id)
		}
	}
	return reaped, nil
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.ProductRepository = (*ProductRepositoryStub)(nil)
	_ repository.AddressRepository = (*AddressRepositoryStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
)
