package httpserver

import (
	"errors"
	"net/http"

	"flowershop-api/internal/domain"
	"flowershop-api/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	Lines        []domain.CartLine `json:"lines"`
	DeliveryDate string            `json:"deliveryDate"`
	ZoneID       string            `json:"zoneId"`
}

func checkoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		in := checkout.AdmitInput{
			Lines:        req.Lines,
			DeliveryDate: req.DeliveryDate,
			ZoneID:       req.ZoneID,
		}
		// Promo state rides in the session cookie; a missing or
		// invalid token means no discount, never an error.
		if token, err := c.Cookie(promoCookieName); err == nil {
			if state, ok := deps.PromoSvc.Decode(token); ok {
				in.Promo = &state
			}
		}

		order, err := deps.CheckoutSvc.Admit(c.Request.Context(), in)
		if err != nil {
			writeAdmissionError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func writeAdmissionError(c *gin.Context, err error) {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
		return
	}
	var belowMin *domain.BelowMinimumError
	if errors.As(err, &belowMin) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "order below minimum",
			"minimumCents":   belowMin.MinimumCents,
			"netCents":       belowMin.NetCents,
			"shortfallCents": belowMin.Shortfall(),
		})
		return
	}
	if errors.Is(err, domain.ErrZoneNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "delivery zone not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
