package httpserver

import (
	"errors"
	"net/http"

	"flowershop-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const promoCookieName = "promo_session"

type applyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

func applyPromoHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyPromoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code required"})
			return
		}
		state, token, err := deps.PromoSvc.Apply(c.Request.Context(), req.Code)
		if err != nil {
			// Failed apply leaves the ledger untouched: no cookie write.
			if errors.Is(err, domain.ErrInvalidPromoCode) {
				c.JSON(http.StatusNotFound, gin.H{"error": "invalid promo code"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		setPromoCookie(c, token, deps.CookieSecure)
		c.JSON(http.StatusOK, state)
	}
}

func removePromoHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Idempotent: clearing an absent cookie is still a success.
		clearPromoCookie(c, deps.CookieSecure)
		c.Status(http.StatusNoContent)
	}
}

func getPromoHandler(svc promoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(promoCookieName)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"applied": false})
			return
		}
		state, ok := svc.Decode(token)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"applied": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"applied": true, "code": state.Code, "discountPercent": state.DiscountPercent})
	}
}

// setPromoCookie writes the ledger token as a browser-session cookie:
// httpOnly, SameSite=Lax, Secure in production, path /.
func setPromoCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(promoCookieName, token, 0, "/", "", secure, true)
}

func clearPromoCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(promoCookieName, "", -1, "/", "", secure, true)
}
