package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type addLineRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.View(c.Request.Context()))
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func addLineHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		line, err := svc.Add(c.Request.Context(), req.ProductID, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

func incrementHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		line, err := svc.Increment(c.Request.Context(), productID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

func decrementHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		if err := svc.Decrement(c.Request.Context(), productID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, svc.View(c.Request.Context()))
	}
}

func removeLineHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		if err := svc.Remove(c.Request.Context(), productID); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func reconcileHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Reconcile(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func checkoutHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := svc.Checkout(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"orderId": orderID})
	}
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}
