// internal/domain/cart/engine.go
package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// Engine keeps Cart.Total consistent with the cart's line items. Every
// mutating operation runs the item write and a full recomputation of the
// total inside one unit of work, so a reader outside the transaction never
// observes items and total out of sync.
//
// Totals are recomputed from a full scan of the cart's items rather than
// adjusted incrementally. A missed incremental update would drift silently;
// the full scan costs one extra read per write and cannot drift.
type Engine struct {
	runner TxRunner
}

// NewEngine creates a consistency engine on top of a transaction runner.
func NewEngine(runner TxRunner) *Engine {
	return &Engine{runner: runner}
}

// AddItem inserts a new line item and recomputes the cart total.
//
// Quantity must be positive and unit price non-negative; violations fail
// with Validation before any storage call. A duplicate (cart, product) pair
// fails with Conflict — quantities are never merged on add.
func (e *Engine) AddItem(ctx context.Context, item *CartItem) (*CartItem, error) {
	if item.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be greater than 0")
	}
	if item.UnitPrice.IsNegative() {
		return nil, apperr.Validation("unit price must be non-negative")
	}

	var created *CartItem
	err := e.runner.InCartTx(ctx, item.CartID, func(s Stores) error {
		inserted, err := s.Items.Insert(item)
		if err != nil {
			return err
		}
		created = inserted
		return e.recalculate(s, item.CartID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateItem applies a partial update to a line item and recomputes the cart
// total. Setting quantity to exactly 0 deletes the item instead; the second
// return value reports that case and no item payload is returned.
func (e *Engine) UpdateItem(ctx context.Context, cartID, productID uuid.UUID, patch ItemPatch) (*CartItem, bool, error) {
	if patch.IsEmpty() {
		return nil, false, apperr.Validation("at least one field must be provided")
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, false, apperr.Validation("quantity must be zero or greater")
		}
		if *patch.Quantity == 0 {
			// Quantity is never persisted as 0; zero means delete.
			if err := e.RemoveItem(ctx, cartID, productID); err != nil {
				return nil, false, err
			}
			return nil, true, nil
		}
	}
	if patch.UnitPrice != nil && patch.UnitPrice.IsNegative() {
		return nil, false, apperr.Validation("unit price must be zero or greater")
	}

	var updated *CartItem
	err := e.runner.InCartTx(ctx, cartID, func(s Stores) error {
		item, err := s.Items.SetFields(cartID, productID, patch)
		if err != nil {
			return err
		}
		updated = item
		return e.recalculate(s, cartID)
	})
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

// RemoveItem deletes one line item and recomputes the cart total. Removing
// an already-absent item fails with NotFound rather than succeeding
// silently, so callers can tell "removed" from "was never there".
func (e *Engine) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return e.runner.InCartTx(ctx, cartID, func(s Stores) error {
		deleted, err := s.Items.Delete(cartID, productID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperr.NotFound("cart item not found")
		}
		return e.recalculate(s, cartID)
	})
}

// ClearCart bulk-deletes all items for the cart and persists a zero total.
// Clearing an already-empty cart is not an error.
func (e *Engine) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return e.runner.InCartTx(ctx, cartID, func(s Stores) error {
		if _, err := s.Items.DeleteAllForCart(cartID); err != nil {
			return err
		}
		return e.recalculate(s, cartID)
	})
}

// recalculate reads the cart's current items, sums quantity × unit price
// with exact decimal arithmetic (an empty set sums to exactly 0), and
// persists the sum. Must run inside the same unit of work as the item
// mutation it follows.
func (e *Engine) recalculate(s Stores, cartID uuid.UUID) error {
	items, err := s.Items.ListByCart(cartID)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].TotalPrice())
	}

	return s.Carts.SetTotal(cartID, total)
}
