// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart statuses. Only StatusActive is set by this service's own lifecycle;
// the others are reachable through the administrative update path.
const (
	StatusActive     = "active"
	StatusCheckedOut = "checked_out"
	StatusAbandoned  = "abandoned"
)

// Cart represents a user's shopping cart. Total is a derived field: it is
// never authored by clients, only recomputed from the cart's items after
// every item mutation.
type Cart struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Status    string          `gorm:"size:20;not null;default:'active'" json:"status"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (Cart) TableName() string {
	return "carts"
}

// BeforeCreate hook to assign the cart id
func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem represents one (cart, product) association. UnitPrice is captured
// at add time and does not follow later product price changes. A persisted
// row never has quantity 0; setting quantity to 0 deletes the row.
type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate hook to assign the item id
func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TotalPrice returns quantity × unit price for this line.
func (i *CartItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemPatch is a partial update for a cart item. Nil fields are untouched.
type ItemPatch struct {
	Quantity  *int
	UnitPrice *decimal.Decimal
}

// IsEmpty reports whether the patch carries no fields.
func (p ItemPatch) IsEmpty() bool {
	return p.Quantity == nil && p.UnitPrice == nil
}

// CartPatch is a partial update for a cart row (administrative path).
type CartPatch struct {
	Status *string
	Total  *decimal.Decimal
}
