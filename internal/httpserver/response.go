package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-companion/internal/domain"
	"marketplace-companion/internal/orders"
)

// writeError maps domain errors onto HTTP statuses. Anything unrecognized is
// a 500 with a generic body; submission failures are flagged retryable so the
// UI can offer a retry without the companion retrying on its own.
func writeError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "insufficient stock",
			"productId":  stockErr.ProductID,
			"available":  stockErr.Available,
			"maxAddable": stockErr.MaxAddable,
		})
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStockLimit):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, orders.ErrSubmitFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "order submission failed", "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
