package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
)

const pingTimeout = 2 * time.Second

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
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

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type chatRepository struct {
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
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Chats() repository.ChatRepository {
	return &chatRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            customer_id BIGINT NOT NULL,
            customer TEXT NOT NULL DEFAULT '',
            store_id TEXT NOT NULL DEFAULT '',
            store_name TEXT NOT NULL DEFAULT '',
            pickup TEXT NOT NULL DEFAULT '',
            dropoff TEXT NOT NULL,
            distance NUMERIC(10, 2) NOT NULL DEFAULT 0,
            lines JSONB NOT NULL DEFAULT '[]',
            payment TEXT NOT NULL,
            card_brand TEXT NOT NULL DEFAULT '',
            card_last4 TEXT NOT NULL DEFAULT '',
            items_total NUMERIC(12, 2) NOT NULL DEFAULT 0,
            delivery_fee NUMERIC(12, 2) NOT NULL DEFAULT 0,
            total NUMERIC(12, 2) NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            driver TEXT NOT NULL DEFAULT '',
            eta TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
            seq BIGSERIAL PRIMARY KEY,
            id TEXT UNIQUE NOT NULL,
            order_id TEXT NOT NULL REFERENCES orders(id),
            sender TEXT NOT NULL,
            text TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_driver ON orders(driver, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_order ON chat_messages(order_id, seq)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE login=$1`
	return r.getOne(ctx, query, login)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) CountByRole(ctx context.Context) (map[model.Role]int, error) {
	const query = `SELECT role, COUNT(*) FROM users GROUP BY role`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.Role]int)
	for rows.Next() {
		var (
			role  model.Role
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, kind, customer_id, customer, store_id, store_name, pickup, dropoff, distance, lines,
                      payment, card_brand, card_last4, items_total, delivery_fee, total, status, driver, eta,
                      created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (model.Order, error) {
	var (
		o     model.Order
		lines []byte
	)
	err := row.Scan(&o.ID, &o.Kind, &o.CustomerID, &o.Customer, &o.StoreID, &o.StoreName, &o.Pickup, &o.Dropoff,
		&o.Distance, &lines, &o.Payment, &o.CardBrand, &o.CardLast4, &o.ItemsTotal, &o.DeliveryFee, &o.Total,
		&o.Status, &o.Driver, &o.ETA, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return o, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &o.Lines); err != nil {
			return o, fmt.Errorf("decode order lines: %w", err)
		}
	}
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}

	const query = `INSERT INTO orders (` + orderColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.storage.pool.Exec(ctx, query,
		order.ID, order.Kind, order.CustomerID, order.Customer, order.StoreID, order.StoreName, order.Pickup,
		order.Dropoff, order.Distance, lines, order.Payment, order.CardBrand, order.CardLast4, order.ItemsTotal,
		order.DeliveryFee, order.Total, order.Status, order.Driver, order.ETA, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, customerID)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE status=$1 ORDER BY created_at, id LIMIT NULLIF($2, 0)`
	if limit < 0 {
		limit = 0
	}
	return r.list(ctx, query, status, int64(limit))
}

func (r *orderRepository) ListByDriver(ctx context.Context, driver string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE driver=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, driver)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from model.OrderStatus, update model.StatusUpdate) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE orders SET status=$1, driver=$2, updated_at=$3 WHERE id=$4 AND status=$5`
		tag, err := tx.Exec(ctx, updateQuery, update.Status, update.Driver, update.At, id, from)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		const selectQuery = `SELECT status FROM orders WHERE id=$1`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, selectQuery, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return domainErrors.ErrStatusConflict
	})
}

func (r *orderRepository) Stats(ctx context.Context) (*model.DeliveryStats, error) {
	const query = `SELECT COUNT(*),
                          COUNT(*) FILTER (WHERE status='delivered'),
                          COALESCE(SUM(total) FILTER (WHERE status='delivered'), 0)
                   FROM orders`
	var stats model.DeliveryStats
	if err := r.storage.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.Delivered, &stats.Revenue); err != nil {
		return nil, err
	}
	return &stats, nil
}

// --- ChatRepository implementation ---

func (r *chatRepository) Append(ctx context.Context, msg model.ChatMessage) error {
	const query = `INSERT INTO chat_messages (id, order_id, sender, text, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, msg.ID, msg.OrderID, msg.Sender, msg.Text, msg.Timestamp)
	return err
}

func (r *chatRepository) List(ctx context.Context, orderID string) ([]model.ChatMessage, error) {
	const query = `SELECT id, order_id, sender, text, created_at FROM chat_messages WHERE order_id=$1 ORDER BY seq`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.OrderID, &m.Sender, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, m)
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

// Ping checks that the order database answers within pingTimeout.
func (s *Storage) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("ping order database: %w", err)
	}
	return nil
}
