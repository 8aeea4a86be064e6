// internal/domain/cart/item_store.go
package cart

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// ItemStore is pure persistence over cart item rows, no business logic.
type ItemStore interface {
	// Insert creates a new row. It fails with Conflict when a row for the
	// same (cart, product) pair already exists; items are never merged here.
	Insert(item *CartItem) (*CartItem, error)
	// ListByCart returns all rows for a cart ordered by creation time
	// ascending, undated rows last.
	ListByCart(cartID uuid.UUID) ([]CartItem, error)
	// SetFields applies a partial update and returns the updated row. It
	// fails with NotFound when no row matched.
	SetFields(cartID, productID uuid.UUID, patch ItemPatch) (*CartItem, error)
	// Delete removes one row and returns the count removed (0 or 1).
	Delete(cartID, productID uuid.UUID) (int64, error)
	// DeleteAllForCart removes every row for the cart and returns the count.
	DeleteAllForCart(cartID uuid.UUID) (int64, error)
}

type gormItemStore struct {
	db *gorm.DB
}

// NewItemStore creates a GORM-backed item store
func NewItemStore(db *gorm.DB) ItemStore {
	return &gormItemStore{db: db}
}

func (s *gormItemStore) Insert(item *CartItem) (*CartItem, error) {
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}
	return item, nil
}

func (s *gormItemStore) ListByCart(cartID uuid.UUID) ([]CartItem, error) {
	var items []CartItem
	err := s.db.Where("cart_id = ?", cartID).
		Order("created_at ASC NULLS LAST").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return items, nil
}

func (s *gormItemStore) SetFields(cartID, productID uuid.UUID, patch ItemPatch) (*CartItem, error) {
	updates := map[string]interface{}{}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		updates["unit_price"] = *patch.UnitPrice
	}

	result := s.db.Model(&CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(updates)
	if result.Error != nil {
		return nil, apperr.FromStorage(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("cart item not found")
	}

	var item CartItem
	err := s.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &item, nil
}

func (s *gormItemStore) Delete(cartID, productID uuid.UUID) (int64, error) {
	result := s.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&CartItem{})
	if result.Error != nil {
		return 0, apperr.Storage(result.Error)
	}
	return result.RowsAffected, nil
}

func (s *gormItemStore) DeleteAllForCart(cartID uuid.UUID) (int64, error) {
	result := s.db.Where("cart_id = ?", cartID).Delete(&CartItem{})
	if result.Error != nil {
		return 0, apperr.Storage(result.Error)
	}
	return result.RowsAffected, nil
}
