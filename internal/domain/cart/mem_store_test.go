package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// In-memory stores and runner used by the engine and service tests. The
// runner serializes units of work with one mutex and restores a snapshot of
// the state when fn fails, mirroring transaction rollback.

type memState struct {
	mu    sync.Mutex
	carts map[uuid.UUID]Cart
	items []CartItem

	failSetTotal error
	clock        time.Time
}

func newMemState() *memState {
	return &memState{
		carts: make(map[uuid.UUID]Cart),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (st *memState) now() time.Time {
	st.clock = st.clock.Add(time.Second)
	return st.clock
}

func (st *memState) snapshot() ([]CartItem, map[uuid.UUID]Cart) {
	items := make([]CartItem, len(st.items))
	copy(items, st.items)
	carts := make(map[uuid.UUID]Cart, len(st.carts))
	for k, v := range st.carts {
		carts[k] = v
	}
	return items, carts
}

type memCartStore struct {
	st *memState
}

func (s *memCartStore) Create(userID uuid.UUID) (*Cart, error) {
	c := Cart{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    StatusActive,
		Total:     decimal.Zero,
		CreatedAt: s.st.now(),
	}
	s.st.carts[c.ID] = c
	return &c, nil
}

func (s *memCartStore) GetByID(cartID uuid.UUID) (*Cart, error) {
	if c, ok := s.st.carts[cartID]; ok {
		return &c, nil
	}
	return nil, nil
}

func (s *memCartStore) GetActiveByUser(userID uuid.UUID) (*Cart, error) {
	for _, c := range s.st.carts {
		if c.UserID == userID && c.Status == StatusActive {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memCartStore) UpdateFields(cartID uuid.UUID, patch CartPatch) (*Cart, error) {
	c, ok := s.st.carts[cartID]
	if !ok {
		return nil, apperr.NotFound("cart not found")
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Total != nil {
		c.Total = *patch.Total
	}
	s.st.carts[cartID] = c
	return &c, nil
}

func (s *memCartStore) SetTotal(cartID uuid.UUID, total decimal.Decimal) error {
	if s.st.failSetTotal != nil {
		return apperr.Storage(s.st.failSetTotal)
	}
	c, ok := s.st.carts[cartID]
	if !ok {
		return nil
	}
	c.Total = total
	s.st.carts[cartID] = c
	return nil
}

func (s *memCartStore) Delete(cartID uuid.UUID) (int64, error) {
	if _, ok := s.st.carts[cartID]; !ok {
		return 0, nil
	}
	delete(s.st.carts, cartID)
	return 1, nil
}

type memItemStore struct {
	st *memState
}

func (s *memItemStore) Insert(item *CartItem) (*CartItem, error) {
	for i := range s.st.items {
		if s.st.items[i].CartID == item.CartID && s.st.items[i].ProductID == item.ProductID {
			return nil, apperr.Conflict("unique constraint violation")
		}
	}
	stored := *item
	stored.ID = uuid.New()
	stored.CreatedAt = s.st.now()
	s.st.items = append(s.st.items, stored)
	return &stored, nil
}

func (s *memItemStore) ListByCart(cartID uuid.UUID) ([]CartItem, error) {
	var items []CartItem
	for i := range s.st.items {
		if s.st.items[i].CartID == cartID {
			items = append(items, s.st.items[i])
		}
	}
	// Items were appended in creation order; nothing more to sort.
	return items, nil
}

func (s *memItemStore) SetFields(cartID, productID uuid.UUID, patch ItemPatch) (*CartItem, error) {
	for i := range s.st.items {
		if s.st.items[i].CartID == cartID && s.st.items[i].ProductID == productID {
			if patch.Quantity != nil {
				s.st.items[i].Quantity = *patch.Quantity
			}
			if patch.UnitPrice != nil {
				s.st.items[i].UnitPrice = *patch.UnitPrice
			}
			item := s.st.items[i]
			return &item, nil
		}
	}
	return nil, apperr.NotFound("cart item not found")
}

func (s *memItemStore) Delete(cartID, productID uuid.UUID) (int64, error) {
	for i := range s.st.items {
		if s.st.items[i].CartID == cartID && s.st.items[i].ProductID == productID {
			s.st.items = append(s.st.items[:i], s.st.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memItemStore) DeleteAllForCart(cartID uuid.UUID) (int64, error) {
	var kept []CartItem
	var deleted int64
	for i := range s.st.items {
		if s.st.items[i].CartID == cartID {
			deleted++
			continue
		}
		kept = append(kept, s.st.items[i])
	}
	s.st.items = kept
	return deleted, nil
}

type memTxRunner struct {
	st *memState
}

func (r *memTxRunner) InCartTx(ctx context.Context, cartID uuid.UUID, fn func(s Stores) error) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	items, carts := r.st.snapshot()
	err := fn(Stores{
		Carts: &memCartStore{st: r.st},
		Items: &memItemStore{st: r.st},
	})
	if err != nil {
		r.st.items = items
		r.st.carts = carts
	}
	return err
}

func newTestService() (*Service, *memState) {
	st := newMemState()
	svc := newService(&memCartStore{st: st}, &memItemStore{st: st}, &memTxRunner{st: st})
	return svc, st
}
