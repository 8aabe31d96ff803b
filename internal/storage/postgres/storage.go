package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/virebo/lanthandel/internal/domain/errors"
	"github.com/virebo/lanthandel/internal/domain/model"
	"github.com/virebo/lanthandel/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool used by the storage. Tests substitute
// a pgxmock pool through this seam.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type userRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT[] NOT NULL DEFAULT '{}',
            category TEXT NOT NULL,
            price BIGINT NOT NULL,
            offer_price BIGINT NOT NULL,
            quantity BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
            in_stock BOOLEAN NOT NULL DEFAULT FALSE,
            image TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            cart JSONB NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id),
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            email TEXT NOT NULL,
            street TEXT NOT NULL,
            city TEXT NOT NULL,
            state TEXT NOT NULL,
            zipcode TEXT NOT NULL,
            country TEXT NOT NULL,
            phone TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users(id),
            address_id UUID NOT NULL REFERENCES addresses(id),
            amount BIGINT NOT NULL,
            payment_type TEXT NOT NULL,
            delivery_date TIMESTAMPTZ NOT NULL,
            is_paid BOOLEAN NOT NULL DEFAULT FALSE,
            status TEXT NOT NULL,
            tracking_number TEXT,
            estimated_delivery TIMESTAMPTZ,
            cod_status TEXT,
            session_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id UUID NOT NULL,
            name TEXT NOT NULL,
            quantity BIGINT NOT NULL,
            unit_price BIGINT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_unpaid ON orders(payment_type, is_paid, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- ProductRepository implementation ---

const productColumns = `id, name, description, category, price, offer_price, quantity, in_stock, image, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.OfferPrice,
		&p.Quantity, &p.InStock, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (id, name, description, category, price, offer_price, quantity, in_stock, image)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING created_at, updated_at`
	product.ID = uuid.New()
	product.DeriveInStock()
	err := r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, product.OfferPrice, product.Quantity, product.InStock, product.Image,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domainErrors.ProductNotFoundError{ProductID: id.String()}
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `UPDATE products
                   SET name=$2, description=$3, category=$4, price=$5, offer_price=$6,
                       quantity=$7, in_stock=$8, image=$9, updated_at=NOW()
                   WHERE id=$1
                   RETURNING created_at, updated_at`
	product.DeriveInStock()
	err := r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, product.OfferPrice, product.Quantity, product.InStock, product.Image,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domainErrors.ProductNotFoundError{ProductID: product.ID.String()}
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity int64) (*model.Product, error) {
	const query = `UPDATE products
                   SET quantity=$2, in_stock=$2 > 0, updated_at=NOW()
                   WHERE id=$1
                   RETURNING ` + productColumns
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domainErrors.ProductNotFoundError{ProductID: id.String()}
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return &domainErrors.ProductNotFoundError{ProductID: id.String()}
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, address_id, amount, payment_type, delivery_date, is_paid, status,
                      tracking_number, estimated_delivery, cod_status, session_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o         model.Order
		tracking  *string
		estimated *time.Time
		codStatus *string
		sessionID *string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.AddressID, &o.Amount, &o.PaymentType, &o.DeliveryDate,
		&o.IsPaid, &o.Status, &tracking, &estimated, &codStatus, &sessionID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if sessionID != nil {
		o.SessionID = *sessionID
	}
	if o.PaymentType == model.PaymentTypeCOD && tracking != nil {
		cod := &model.CODDetails{TrackingNumber: *tracking, Amount: o.Amount}
		if estimated != nil {
			cod.EstimatedDelivery = *estimated
		}
		if codStatus != nil {
			cod.Status = model.CODStatus(*codStatus)
		}
		o.COD = cod
	}
	return &o, nil
}

// Place reserves stock and creates the order atomically. Every product row is
// locked before its quantity is checked, so two concurrent checkouts for the
// last unit cannot both pass.
func (r *orderRepository) Place(ctx context.Context, order *model.Order) (*model.Order, error) {
	order.ID = uuid.New()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var subtotal int64
		for i := range order.Items {
			item := &order.Items[i]

			var (
				name      string
				offer     int64
				available int64
			)
			err := tx.QueryRow(ctx,
				`SELECT name, offer_price, quantity FROM products WHERE id=$1 FOR UPDATE`,
				item.ProductID,
			).Scan(&name, &offer, &available)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return &domainErrors.ProductNotFoundError{ProductID: item.ProductID.String()}
				}
				return err
			}
			if available < item.Quantity {
				return &domainErrors.InsufficientStockError{ProductName: name, Available: available}
			}

			if _, err := tx.Exec(ctx,
				`UPDATE products SET quantity = quantity - $2, in_stock = quantity - $2 > 0, updated_at = NOW() WHERE id=$1`,
				item.ProductID, item.Quantity,
			); err != nil {
				return err
			}

			item.Name = name
			item.UnitPrice = offer
			subtotal += offer * item.Quantity
		}

		order.Amount = model.ApplyTax(subtotal)

		var (
			tracking  *string
			estimated *time.Time
			codStatus *string
		)
		if order.COD != nil {
			order.COD.Amount = order.Amount
			tracking = &order.COD.TrackingNumber
			estimated = &order.COD.EstimatedDelivery
			cs := string(order.COD.Status)
			codStatus = &cs
		}

		err := tx.QueryRow(ctx,
			`INSERT INTO orders (id, user_id, address_id, amount, payment_type, delivery_date, is_paid, status,
                                 tracking_number, estimated_delivery, cod_status)
             VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8, $9, $10)
             RETURNING created_at, updated_at`,
			order.ID, order.UserID, order.AddressID, order.Amount, order.PaymentType,
			order.DeliveryDate, order.Status, tracking, estimated, codStatus,
		).Scan(&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			if _, err := tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_id, name, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
				order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *model.Order) error {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT product_id, name, quantity, unit_price FROM order_items WHERE order_id=$1`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	order.Items = items
	return nil
}

// Listings include COD orders regardless of payment and online orders only
// once paid.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE user_id=$1 AND (payment_type='COD' OR is_paid)
                   ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE payment_type='COD' OR is_paid
                   ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, *order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := r.loadItems(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	ct, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepository) UpdateCODStatus(ctx context.Context, id uuid.UUID, cod model.CODStatus, status model.OrderStatus, isPaid bool) (*model.Order, error) {
	ct, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET cod_status=$2, status=$3, is_paid=$4, updated_at=NOW()
         WHERE id=$1 AND payment_type='COD'`,
		id, cod, status, isPaid)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepository) SetSessionID(ctx context.Context, id uuid.UUID, sessionID string) error {
	ct, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET session_id=$2, updated_at=NOW() WHERE id=$1`, id, sessionID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	ct, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET is_paid=TRUE, status=$2, updated_at=NOW() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// Delete restores line-item stock and removes the order. A product deleted in
// the interim is skipped, not an error.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return deleteOrderTx(ctx, tx, id)
	})
}

func deleteOrderTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	rows, err := tx.Query(ctx,
		`SELECT product_id, quantity FROM order_items WHERE order_id=$1`, id)
	if err != nil {
		return err
	}

	type restock struct {
		productID uuid.UUID
		quantity  int64
	}
	var restocks []restock
	for rows.Next() {
		var rs restock
		if err := rows.Scan(&rs.productID, &rs.quantity); err != nil {
			rows.Close()
			return err
		}
		restocks = append(restocks, rs)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rs := range restocks {
		if _, err := tx.Exec(ctx,
			`UPDATE products SET quantity = quantity + $2, in_stock = quantity + $2 > 0, updated_at = NOW() WHERE id=$1`,
			rs.productID, rs.quantity,
		); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ReapUnpaid(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	const selectQuery = `SELECT ` + orderColumns + ` FROM orders
                         WHERE payment_type='Online' AND NOT is_paid AND status=$1 AND created_at < $2
                         ORDER BY created_at
                         LIMIT $3
                         FOR UPDATE SKIP LOCKED`

	var reaped []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, model.OrderStatusAwaitingPayment, cutoff, limit)
		if err != nil {
			return err
		}
		for rows.Next() {
			order, err := scanOrder(rows)
			if err != nil {
				rows.Close()
				return err
			}
			reaped = append(reaped, *order)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, order := range reaped {
			if err := deleteOrderTx(ctx, tx, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reaped, nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (id, name, email, password_hash, cart) VALUES ($1, $2, $3, $4, '{}')
                   RETURNING created_at`
	u := model.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash, Cart: model.Cart{}}
	err := r.storage.pool.QueryRow(ctx, query, u.ID, name, email, passwordHash).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u       model.User
		rawCart []byte
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &rawCart, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Cart = model.Cart{}
	if len(rawCart) > 0 {
		if err := json.Unmarshal(rawCart, &u.Cart); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, cart, created_at FROM users WHERE email=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, cart, created_at FROM users WHERE id=$1`
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdateCart(ctx context.Context, userID uuid.UUID, cart model.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	ct, err := r.storage.pool.Exec(ctx, `UPDATE users SET cart=$2 WHERE id=$1`, userID, raw)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- AddressRepository implementation ---

const addressColumns = `id, user_id, first_name, last_name, email, street, city, state, zipcode, country, phone, created_at`

func scanAddress(row pgx.Row) (*model.Address, error) {
	var a model.Address
	err := row.Scan(&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.Email, &a.Street,
		&a.City, &a.State, &a.Zipcode, &a.Country, &a.Phone, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *addressRepository) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	const query = `INSERT INTO addresses (id, user_id, first_name, last_name, email, street, city, state, zipcode, country, phone)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING created_at`
	address.ID = uuid.New()
	err := r.storage.pool.QueryRow(ctx, query,
		address.ID, address.UserID, address.FirstName, address.LastName, address.Email,
		address.Street, address.City, address.State, address.Zipcode, address.Country, address.Phone,
	).Scan(&address.CreatedAt)
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE id=$1`
	a, err := scanAddress(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
