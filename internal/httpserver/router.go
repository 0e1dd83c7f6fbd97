package httpserver

import (
	"context"
	"errors"
	"log"

	"flowershop-api/internal/domain"
	"flowershop-api/internal/repository/minimum"
	"flowershop-api/internal/repository/promo"
	"flowershop-api/internal/repository/zone"
	"flowershop-api/internal/service/checkout"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type checkoutService interface {
	Admit(ctx context.Context, in checkout.AdmitInput) (*domain.Order, error)
}

type promoService interface {
	Apply(ctx context.Context, code string) (domain.PromoState, string, error)
	Decode(token string) (domain.PromoState, bool)
}

type orderService interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// Deps carries everything the router needs.
type Deps struct {
	CheckoutSvc checkoutService
	PromoSvc    promoService
	OrderSvc    orderService
	ZoneRepo    zone.Repository
	MinimumRepo minimum.Repository
	PromoRepo   promo.Repository
	// AdminToken guards reference-data mutations and the payment
	// callback. Empty means the admin surface is disabled.
	AdminToken string
	// CookieSecure marks the promo cookie Secure; on in production.
	CookieSecure bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CheckoutSvc == nil || deps.PromoSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing service dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.POST("/checkout", checkoutHandler(deps))
		api.GET("/orders/:id", getOrderHandler(deps.OrderSvc))

		api.GET("/promo", getPromoHandler(deps.PromoSvc))
		api.POST("/promo", applyPromoHandler(deps))
		api.DELETE("/promo", removePromoHandler(deps))

		api.GET("/zones", listZonesHandler(deps.ZoneRepo))
	}

	guarded := router.Group("", bearerAuth(deps.AdminToken))
	{
		guarded.POST("/api/payments/callback", paymentCallbackHandler(deps.OrderSvc))

		admin := guarded.Group("/admin")
		admin.POST("/zones", createZoneHandler(deps.ZoneRepo))
		admin.PUT("/zones/:id", updateZoneHandler(deps.ZoneRepo))
		admin.GET("/minimum-rules", listMinimumRulesHandler(deps.MinimumRepo))
		admin.PUT("/minimum-rules/:date", upsertMinimumRuleHandler(deps.MinimumRepo))
		admin.DELETE("/minimum-rules/:date", deleteMinimumRuleHandler(deps.MinimumRepo))
		admin.GET("/promo-codes", listPromoCodesHandler(deps.PromoRepo))
		admin.POST("/promo-codes", createPromoCodeHandler(deps.PromoRepo))
		admin.DELETE("/promo-codes/:code", deactivatePromoCodeHandler(deps.PromoRepo))
	}

	return router, nil
}
