// internal/domain/cart/txn.go
package cart

import (
	"context"
	"hash/fnv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// Stores bundles the transaction-scoped stores handed to a unit of work.
type Stores struct {
	Carts CartStore
	Items ItemStore
}

// TxRunner runs a unit of work against one cart. The implementation must
// guarantee that everything done inside fn either commits as a whole or
// rolls back as a whole, and that two concurrent units of work on the same
// cart are serialized against each other.
type TxRunner interface {
	InCartTx(ctx context.Context, cartID uuid.UUID, fn func(s Stores) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner creates a GORM-backed transaction runner.
//
// Each unit of work opens one database transaction and takes a per-cart
// Postgres advisory lock (pg_advisory_xact_lock, released at commit or
// rollback) before running fn. Recompute-from-full-scan totals are only
// correct when the read of the item set and the write of the total cannot
// interleave with another mutation on the same cart; the advisory lock
// serializes those mutations without requiring serializable isolation.
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InCartTx(ctx context.Context, cartID uuid.UUID, fn func(s Stores) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", advisoryLockKey(cartID)).Error; err != nil {
			return apperr.Storage(err)
		}
		return fn(Stores{
			Carts: NewCartStore(tx),
			Items: NewItemStore(tx),
		})
	})
}

// advisoryLockKey hashes a cart id into the signed 64-bit key space Postgres
// advisory locks use.
func advisoryLockKey(cartID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(cartID[:])
	return int64(h.Sum64())
}
