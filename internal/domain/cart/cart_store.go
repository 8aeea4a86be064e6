// internal/domain/cart/cart_store.go
package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// CartStore is pure persistence over cart rows. Absence of a row is reported
// as (nil, nil), never as an error.
type CartStore interface {
	Create(userID uuid.UUID) (*Cart, error)
	GetByID(cartID uuid.UUID) (*Cart, error)
	GetActiveByUser(userID uuid.UUID) (*Cart, error)
	UpdateFields(cartID uuid.UUID, patch CartPatch) (*Cart, error)
	SetTotal(cartID uuid.UUID, total decimal.Decimal) error
	Delete(cartID uuid.UUID) (int64, error)
}

type gormCartStore struct {
	db *gorm.DB
}

// NewCartStore creates a GORM-backed cart store
func NewCartStore(db *gorm.DB) CartStore {
	return &gormCartStore{db: db}
}

func (s *gormCartStore) Create(userID uuid.UUID) (*Cart, error) {
	c := Cart{
		UserID: userID,
		Status: StatusActive,
		Total:  decimal.Zero,
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &c, nil
}

func (s *gormCartStore) GetByID(cartID uuid.UUID) (*Cart, error) {
	var c Cart
	err := s.db.Where("id = ?", cartID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &c, nil
}

func (s *gormCartStore) GetActiveByUser(userID uuid.UUID) (*Cart, error) {
	var c Cart
	err := s.db.Where("user_id = ? AND status = ?", userID, StatusActive).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &c, nil
}

func (s *gormCartStore) UpdateFields(cartID uuid.UUID, patch CartPatch) (*Cart, error) {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Total != nil {
		updates["total"] = *patch.Total
	}

	result := s.db.Model(&Cart{}).Where("id = ?", cartID).Updates(updates)
	if result.Error != nil {
		return nil, apperr.FromStorage(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("cart not found")
	}

	return s.GetByID(cartID)
}

// SetTotal is the single write path used by the consistency engine to
// persist a recomputed total.
func (s *gormCartStore) SetTotal(cartID uuid.UUID, total decimal.Decimal) error {
	result := s.db.Model(&Cart{}).Where("id = ?", cartID).Update("total", total)
	if result.Error != nil {
		return apperr.Storage(result.Error)
	}
	return nil
}

// Delete removes the cart row only; line items are the caller's
// responsibility.
func (s *gormCartStore) Delete(cartID uuid.UUID) (int64, error) {
	result := s.db.Where("id = ?", cartID).Delete(&Cart{})
	if result.Error != nil {
		return 0, apperr.Storage(result.Error)
	}
	return result.RowsAffected, nil
}
