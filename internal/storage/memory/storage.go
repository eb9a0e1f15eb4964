package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
)

// Storage keeps every repository in process memory. It is the default
// backend when no database is configured.
type Storage struct {
	mu sync.RWMutex

	users      map[int64]model.User
	logins     map[string]int64
	nextUserID int64

	orders map[string]model.Order
	chats  map[string][]model.ChatMessage
	drafts map[int64]model.Draft

	now func() time.Time
}

type userRepository struct{ storage *Storage }
type orderRepository struct{ storage *Storage }
type chatRepository struct{ storage *Storage }
type draftRepository struct{ storage *Storage }

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{
		users:  make(map[int64]model.User),
		logins: make(map[string]int64),
		orders: make(map[string]model.Order),
		chats:  make(map[string][]model.ChatMessage),
		drafts: make(map[int64]model.Draft),
		now:    time.Now,
	}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Chats() repository.ChatRepository {
	return &chatRepository{storage: s}
}

func (s *Storage) Drafts() repository.DraftRepository {
	return &draftRepository{storage: s}
}

// --- UserRepository implementation ---

func (r *userRepository) Create(_ context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logins[login]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.nextUserID++
	u := model.User{
		ID:           s.nextUserID,
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    s.now(),
	}
	s.users[u.ID] = u
	s.logins[login] = u.ID
	return &u, nil
}

func (r *userRepository) GetByLogin(_ context.Context, login string) (*model.User, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.logins[login]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) CountByRole(_ context.Context) (map[model.Role]int, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[model.Role]int)
	for _, u := range s.users {
		counts[u.Role]++
	}
	return counts, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(_ context.Context, order *model.Order) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	s.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *orderRepository) Get(_ context.Context, id string) (*model.Order, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *orderRepository) ListByCustomer(_ context.Context, customerID int64) ([]model.Order, error) {
	return r.storage.selectOrders(func(o model.Order) bool { return o.CustomerID == customerID }, newestFirst, 0), nil
}

func (r *orderRepository) ListByStatus(_ context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	return r.storage.selectOrders(func(o model.Order) bool { return o.Status == status }, oldestFirst, limit), nil
}

func (r *orderRepository) ListByDriver(_ context.Context, driver string) ([]model.Order, error) {
	return r.storage.selectOrders(func(o model.Order) bool { return o.Driver == driver }, newestFirst, 0), nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, id string, from model.OrderStatus, update model.StatusUpdate) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if o.Status != from {
		return domainErrors.ErrStatusConflict
	}
	o.Status = update.Status
	o.Driver = update.Driver
	o.UpdatedAt = update.At
	s.orders[id] = o
	return nil
}

func (r *orderRepository) Stats(_ context.Context) (*model.DeliveryStats, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.DeliveryStats{Revenue: decimal.Zero}
	for _, o := range s.orders {
		stats.Total++
		if o.Status == model.OrderStatusDelivered {
			stats.Delivered++
			stats.Revenue = stats.Revenue.Add(o.Total)
		}
	}
	return stats, nil
}

func newestFirst(a, b model.Order) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func oldestFirst(a, b model.Order) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (s *Storage) selectOrders(match func(model.Order) bool, less func(a, b model.Order) bool, limit int) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Order
	for _, o := range s.orders {
		if match(o) {
			result = append(result, cloneOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func cloneOrder(o model.Order) model.Order {
	lines := make([]model.CartLine, len(o.Lines))
	copy(lines, o.Lines)
	o.Lines = lines
	return o
}

// --- ChatRepository implementation ---

func (r *chatRepository) Append(_ context.Context, msg model.ChatMessage) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats[msg.OrderID] = append(s.chats[msg.OrderID], msg)
	return nil
}

func (r *chatRepository) List(_ context.Context, orderID string) ([]model.ChatMessage, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.chats[orderID]
	result := make([]model.ChatMessage, len(log))
	copy(result, log)
	return result, nil
}

// --- DraftRepository implementation ---

func (r *draftRepository) Get(_ context.Context, customerID int64) (*model.Draft, error) {
	s := r.storage
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[customerID]
	if !ok {
		return &model.Draft{CustomerID: customerID, Payment: model.PaymentCash}, nil
	}
	d.Cart = d.Cart.Clone()
	return &d, nil
}

func (r *draftRepository) Save(_ context.Context, draft *model.Draft) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	d := *draft
	d.Cart = d.Cart.Clone()
	s.drafts[d.CustomerID] = d
	return nil
}

func (r *draftRepository) Delete(_ context.Context, customerID int64) error {
	s := r.storage
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, customerID)
	return nil
}
