// internal/domain/cart/service.go
package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// Service is the facade exposed to the HTTP layer. It validates input
// shapes, delegates item mutations to the consistency engine, and maps
// everything into response DTOs. It adds no invariants of its own.
type Service struct {
	carts  CartStore
	items  ItemStore
	engine *Engine
}

// NewService creates a new cart service
func NewService(db *gorm.DB) *Service {
	return newService(NewCartStore(db), NewItemStore(db), NewTxRunner(db))
}

func newService(carts CartStore, items ItemStore, runner TxRunner) *Service {
	return &Service{
		carts:  carts,
		items:  items,
		engine: NewEngine(runner),
	}
}

// CreateCartRequest represents create cart request
type CreateCartRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// UpdateCartRequest represents the administrative cart update. Writing the
// total here bypasses the consistency engine; item mutations never use this
// path.
type UpdateCartRequest struct {
	Status *string          `json:"status"`
	Total  *decimal.Decimal `json:"total"`
}

// AddItemRequest represents add item request
type AddItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateItemRequest represents update item request
type UpdateItemRequest struct {
	Quantity  *int             `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CartResponse represents a cart row
type CartResponse struct {
	CartID    uuid.UUID       `json:"cart_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// CartItemResponse represents a line item with its derived total
type CartItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	CartID     uuid.UUID       `json:"cart_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toCartResponse(c *Cart) *CartResponse {
	return &CartResponse{
		CartID:    c.ID,
		UserID:    c.UserID,
		Status:    c.Status,
		Total:     c.Total,
		CreatedAt: c.CreatedAt,
	}
}

func toItemResponse(i *CartItem) *CartItemResponse {
	return &CartItemResponse{
		ID:         i.ID,
		ProductID:  i.ProductID,
		CartID:     i.CartID,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TotalPrice: i.TotalPrice(),
		CreatedAt:  i.CreatedAt,
	}
}

// CreateCart creates a new active cart for the user with total 0. One active
// cart per user: a second create while one is active fails with Conflict.
func (s *Service) CreateCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	existing, err := s.carts.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("user already has an active cart")
	}

	c, err := s.carts.Create(userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// GetCart returns the cart by id or NotFound.
func (s *Service) GetCart(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cart not found")
	}
	return toCartResponse(c), nil
}

// GetActiveCart returns the user's active cart or NotFound.
func (s *Service) GetActiveCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.carts.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("cart not found")
	}
	return toCartResponse(c), nil
}

// UpdateCart applies the administrative status/total update.
func (s *Service) UpdateCart(ctx context.Context, cartID uuid.UUID, req *UpdateCartRequest) (*CartResponse, error) {
	if req.Status == nil && req.Total == nil {
		return nil, apperr.Validation("at least one field must be provided")
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return nil, apperr.Validation("invalid cart status")
	}
	if req.Total != nil && req.Total.IsNegative() {
		return nil, apperr.Validation("total must be non-negative")
	}

	c, err := s.carts.UpdateFields(cartID, CartPatch{Status: req.Status, Total: req.Total})
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// DeleteCart removes the cart row only; line items survive and must be
// cleared separately by the caller.
func (s *Service) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	deleted, err := s.carts.Delete(cartID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.NotFound("cart not found")
	}
	return nil
}

// ListItems returns the cart's items in creation order with derived totals.
func (s *Service) ListItems(ctx context.Context, cartID uuid.UUID) ([]CartItemResponse, error) {
	items, err := s.items.ListByCart(cartID)
	if err != nil {
		return nil, err
	}

	responses := make([]CartItemResponse, len(items))
	for i := range items {
		responses[i] = *toItemResponse(&items[i])
	}
	return responses, nil
}

// AddItem adds a line item through the consistency engine.
func (s *Service) AddItem(ctx context.Context, cartID uuid.UUID, req *AddItemRequest) (*CartItemResponse, error) {
	item := &CartItem{
		CartID:    cartID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}

	created, err := s.engine.AddItem(ctx, item)
	if err != nil {
		return nil, err
	}
	return toItemResponse(created), nil
}

// UpdateItem updates a line item through the consistency engine. When the
// request sets quantity to 0 the item is removed and the returned flag is
// true with no item payload.
func (s *Service) UpdateItem(ctx context.Context, cartID, productID uuid.UUID, req *UpdateItemRequest) (*CartItemResponse, bool, error) {
	patch := ItemPatch{Quantity: req.Quantity, UnitPrice: req.UnitPrice}

	item, removed, err := s.engine.UpdateItem(ctx, cartID, productID, patch)
	if err != nil {
		return nil, false, err
	}
	if removed {
		return nil, true, nil
	}
	return toItemResponse(item), false, nil
}

// RemoveItem removes a line item through the consistency engine.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return s.engine.RemoveItem(ctx, cartID, productID)
}

// ClearItems removes all line items through the consistency engine.
func (s *Service) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return s.engine.ClearCart(ctx, cartID)
}

func validStatus(status string) bool {
	switch status {
	case StatusActive, StatusCheckedOut, StatusAbandoned:
		return true
	}
	return false
}
