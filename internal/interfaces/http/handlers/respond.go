// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

// respondError writes the JSON error envelope for err. The status code is
// derived from the error's taxonomy kind, so clients can branch on the
// status without parsing messages.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	c.JSON(status, gin.H{
		"error":  err.Error(),
		"status": status,
	})
}
