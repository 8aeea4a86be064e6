// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/domain/cart"
	"github.com/your-org/shopping-cart-backend/internal/domain/product"
	"github.com/your-org/shopping-cart-backend/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},
		&product.Product{},
		&cart.Cart{},
		&cart.CartItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_carts_user_status ON carts(user_id, status)",

		// Cart item indexes. The unique index backs the no-merge-on-add
		// policy: duplicate (cart_id, product_id) inserts must fail at the
		// storage layer, not rely on a read-then-insert check.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_cart_product ON cart_items(cart_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_created_at ON cart_items(cart_id, created_at ASC)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds development data
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	// Admin user
	var adminCount int64
	m.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := user.User{
			Email:    "admin@example.com",
			Password: string(hashed),
			IsAdmin:  true,
		}
		if err := m.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Println("Seeded admin user: admin@example.com")
	}

	// Sample products
	var productCount int64
	m.db.Model(&product.Product{}).Count(&productCount)
	if productCount == 0 {
		description := "Seeded sample product"
		samples := []product.Product{
			{Name: "Espresso Beans 1kg", Description: &description, Price: decimal.RequireFromString("14.50"), Stock: 120},
			{Name: "Pour-over Kettle", Description: &description, Price: decimal.RequireFromString("39.99"), Stock: 35},
			{Name: "Ceramic Mug", Description: &description, Price: decimal.RequireFromString("8.00"), Stock: 200},
		}
		for i := range samples {
			if err := m.db.Create(&samples[i]).Error; err != nil {
				return fmt.Errorf("failed to seed product: %w", err)
			}
		}
		log.Printf("Seeded %d sample products", len(samples))
	}

	log.Println("✅ Initial data seeding completed")
	return nil
}
