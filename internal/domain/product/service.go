// internal/domain/product/service.go
package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/config"
	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

const cacheTTL = 10 * time.Minute

// Service handles product business logic
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// CreateProductRequest represents create product request
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// UpdateProductRequest represents update product request
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price must be non-negative")
	}
	if req.Stock < 0 {
		return nil, apperr.Validation("stock must be non-negative")
	}

	p := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &p, nil
}

// GetProduct returns the product by id, reading through the Redis cache.
// Cache failures fall back to the database.
func (s *Service) GetProduct(ctx context.Context, productID uuid.UUID) (*Product, error) {
	key := cacheKey(productID)

	if cached, err := s.redisClient.Get(ctx, key).Result(); err == nil {
		var p Product
		if jsonErr := json.Unmarshal([]byte(cached), &p); jsonErr == nil {
			return &p, nil
		}
	}

	var p Product
	err := s.db.Where("id = ?", productID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}

	if data, err := json.Marshal(&p); err == nil {
		s.redisClient.Set(ctx, key, data, cacheTTL)
	}

	return &p, nil
}

// ListProducts returns a page of products ordered by creation time.
func (s *Service) ListProducts(ctx context.Context, page, limit int) ([]Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := s.db.Model(&Product{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Storage(err)
	}

	var products []Product
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	return products, total, nil
}

// UpdateProduct applies a partial update and invalidates the cache entry.
func (s *Service) UpdateProduct(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest) (*Product, error) {
	if req.Name == nil && req.Description == nil && req.Price == nil && req.Stock == nil {
		return nil, apperr.Validation("at least one field must be provided")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, apperr.Validation("price must be non-negative")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, apperr.Validation("stock must be non-negative")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}

	result := s.db.Model(&Product{}).Where("id = ?", productID).Updates(updates)
	if result.Error != nil {
		return nil, apperr.FromStorage(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("product not found")
	}

	s.redisClient.Del(ctx, cacheKey(productID))

	var p Product
	if err := s.db.Where("id = ?", productID).First(&p).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}
	return &p, nil
}

// DeleteProduct removes the product and invalidates the cache entry.
func (s *Service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	result := s.db.Where("id = ?", productID).Delete(&Product{})
	if result.Error != nil {
		return apperr.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product not found")
	}

	s.redisClient.Del(ctx, cacheKey(productID))
	return nil
}

func cacheKey(productID uuid.UUID) string {
	return fmt.Sprintf("product:%s", productID)
}
