package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"flowershop-api/internal/domain"
	"flowershop-api/internal/repository/minimum"
	"flowershop-api/internal/repository/promo"
	"flowershop-api/internal/repository/zone"
	"github.com/gin-gonic/gin"
)

type zoneRequest struct {
	Name       string `json:"name" binding:"required"`
	FeeCents   int64  `json:"feeCents"`
	ETAMinutes int    `json:"etaMinutes"`
}

func listZonesHandler(repo zone.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		zones, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if zones == nil {
			zones = []domain.DeliveryZone{}
		}
		c.JSON(http.StatusOK, zones)
	}
}

func createZoneHandler(repo zone.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req zoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}
		if req.FeeCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fee must not be negative"})
			return
		}
		created, err := repo.Create(c.Request.Context(), zone.CreateZoneInput{
			Name:       req.Name,
			FeeCents:   req.FeeCents,
			ETAMinutes: req.ETAMinutes,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateZoneHandler(repo zone.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req zoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}
		updated, err := repo.Update(c.Request.Context(), c.Param("id"), zone.CreateZoneInput{
			Name:       req.Name,
			FeeCents:   req.FeeCents,
			ETAMinutes: req.ETAMinutes,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

type minimumRuleRequest struct {
	MinimumCents int64 `json:"minimumCents" binding:"required"`
}

func listMinimumRulesHandler(repo minimum.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		rules, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if rules == nil {
			rules = []domain.MinimumOrderRule{}
		}
		c.JSON(http.StatusOK, rules)
	}
}

func upsertMinimumRuleHandler(repo minimum.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		var req minimumRuleRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.MinimumCents <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minimumCents must be positive"})
			return
		}
		rule, err := repo.Upsert(c.Request.Context(), date, req.MinimumCents)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, rule)
	}
}

func deleteMinimumRuleHandler(repo minimum.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("date")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type promoCodeRequest struct {
	Code            string     `json:"code" binding:"required"`
	DiscountPercent int        `json:"discountPercent" binding:"required"`
	ExpiresAt       *time.Time `json:"expiresAt"`
}

func listPromoCodesHandler(repo promo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		codes, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if codes == nil {
			codes = []domain.PromoCode{}
		}
		c.JSON(http.StatusOK, codes)
	}
}

func createPromoCodeHandler(repo promo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req promoCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code and discountPercent required"})
			return
		}
		if req.DiscountPercent < 1 || req.DiscountPercent > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discountPercent must be in 1..100"})
			return
		}
		created, err := repo.Create(c.Request.Context(), promo.CreateCodeInput{
			Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
			DiscountPercent: req.DiscountPercent,
			ExpiresAt:       req.ExpiresAt,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "code already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func deactivatePromoCodeHandler(repo promo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Deactivate(c.Request.Context(), c.Param("code")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "code not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
