package httpserver

import (
	"errors"
	"net/http"

	"flowershop-api/internal/domain"
	"github.com/gin-gonic/gin"
)

func getOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type paymentCallbackRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

func paymentCallbackHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentCallbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId and status required"})
			return
		}
		order, err := svc.SetStatus(c.Request.Context(), req.OrderID, domain.OrderStatus(req.Status))
		if err != nil {
			var validation domain.ValidationError
			switch {
			case errors.As(err, &validation):
				c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case errors.Is(err, domain.ErrOrderFinalized):
				c.JSON(http.StatusConflict, gin.H{"error": "order already in terminal status"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
