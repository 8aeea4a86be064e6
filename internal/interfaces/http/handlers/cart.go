// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/domain/cart"
	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// CartHandler handles cart and cart item endpoints
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db),
	}
}

// CreateCart handles POST /carts
func (h *CartHandler) CreateCart(c *gin.Context) {
	var req cart.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.cartService.CreateCart(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetCart handles GET /carts/:id
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}

	resp, err := h.cartService.GetCart(c.Request.Context(), cartID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetActiveCart handles GET /carts/active/:user_id
func (h *CartHandler) GetActiveCart(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid user id"))
		return
	}

	resp, err := h.cartService.GetActiveCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateCart handles PUT /carts/:id (admin)
func (h *CartHandler) UpdateCart(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}

	var req cart.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.cartService.UpdateCart(c.Request.Context(), cartID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteCart handles DELETE /carts/:id
func (h *CartHandler) DeleteCart(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}

	if err := h.cartService.DeleteCart(c.Request.Context(), cartID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cart deleted",
	})
}

// ListItems handles GET /carts/:id/items
func (h *CartHandler) ListItems(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}

	items, err := h.cartService.ListItems(c.Request.Context(), cartID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
	})
}

// AddItem handles POST /carts/:id/items
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), cartID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /carts/:id/items/:product_id. Setting the quantity
// to zero removes the item instead of keeping a zero-quantity row.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid product id"))
		return
	}

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return
	}

	item, removed, err := h.cartService.UpdateItem(c.Request.Context(), cartID, productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if removed {
		c.JSON(http.StatusOK, gin.H{
			"message": "cart item removed",
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveItem handles DELETE /carts/:id/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid product id"))
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), cartID, productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cart item removed",
	})
}

// ClearItems handles DELETE /carts/:id/items
func (h *CartHandler) ClearItems(c *gin.Context) {
	cartID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Validation("invalid cart id"))
		return
	}

	if err := h.cartService.ClearItems(c.Request.Context(), cartID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cart cleared",
	})
}
