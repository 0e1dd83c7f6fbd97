package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flowershop-api/internal/domain"
	"flowershop-api/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCheckoutSvc struct {
	order     *domain.Order
	err       error
	lastInput checkout.AdmitInput
}

func (s *stubCheckoutSvc) Admit(_ context.Context, in checkout.AdmitInput) (*domain.Order, error) {
	s.lastInput = in
	return s.order, s.err
}

type stubPromoSvc struct {
	state    domain.PromoState
	token    string
	applyErr error
	decoded  domain.PromoState
	decodeOK bool
}

func (s *stubPromoSvc) Apply(_ context.Context, _ string) (domain.PromoState, string, error) {
	if s.applyErr != nil {
		return domain.PromoState{}, "", s.applyErr
	}
	return s.state, s.token, nil
}

func (s *stubPromoSvc) Decode(_ string) (domain.PromoState, bool) {
	return s.decoded, s.decodeOK
}

type stubOrderSvc struct {
	order  *domain.Order
	getErr error
	setErr error
}

func (s *stubOrderSvc) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubOrderSvc) SetStatus(_ context.Context, _ string, _ domain.OrderStatus) (*domain.Order, error) {
	return s.order, s.setErr
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.CheckoutSvc == nil {
		deps.CheckoutSvc = &stubCheckoutSvc{}
	}
	if deps.PromoSvc == nil {
		deps.PromoSvc = &stubPromoSvc{}
	}
	if deps.OrderSvc == nil {
		deps.OrderSvc = &stubOrderSvc{}
	}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestApplyPromoSetsCookie(t *testing.T) {
	promoSvc := &stubPromoSvc{
		state: domain.PromoState{Code: "SAVE10", DiscountPercent: 10},
		token: "signed-token",
	}
	router := testRouter(t, Deps{PromoSvc: promoSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/promo", strings.NewReader(`{"code":"SAVE10"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != promoCookieName || cookie.Value != "signed-token" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly || cookie.Path != "/" || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", cookie)
	}
	if cookie.MaxAge != 0 {
		t.Fatalf("expected session cookie, got maxAge %d", cookie.MaxAge)
	}
}

func TestApplyPromoInvalidCodeLeavesNoCookie(t *testing.T) {
	promoSvc := &stubPromoSvc{applyErr: domain.ErrInvalidPromoCode}
	router := testRouter(t, Deps{PromoSvc: promoSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/promo", strings.NewReader(`{"code":"BADCODE"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed apply must not touch the cookie")
	}
}

func TestRemovePromoIdempotent(t *testing.T) {
	router := testRouter(t, Deps{})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/promo", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("call %d: expected 204, got %d", i, rec.Code)
		}
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
			t.Fatalf("call %d: expected clearing cookie, got %+v", i, cookies)
		}
	}
}

func TestGetPromoWithoutCookie(t *testing.T) {
	router := testRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/promo", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["applied"] != false {
		t.Fatalf("expected applied=false, got %v", body)
	}
}

func TestCheckoutPassesPromoFromCookie(t *testing.T) {
	checkoutSvc := &stubCheckoutSvc{order: &domain.Order{ID: "order-1", Status: domain.OrderPending}}
	promoSvc := &stubPromoSvc{
		decoded:  domain.PromoState{Code: "SAVE10", DiscountPercent: 10},
		decodeOK: true,
	}
	router := testRouter(t, Deps{CheckoutSvc: checkoutSvc, PromoSvc: promoSvc})

	body := `{"lines":[{"productId":"p1","quantity":1,"unitBasePriceCents":5000}],"deliveryDate":"2026-09-14","zoneId":"zone-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: promoCookieName, Value: "signed-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if checkoutSvc.lastInput.Promo == nil || checkoutSvc.lastInput.Promo.Code != "SAVE10" {
		t.Fatalf("promo state not forwarded: %+v", checkoutSvc.lastInput.Promo)
	}
}

func TestCheckoutWithoutCookieHasNoPromo(t *testing.T) {
	checkoutSvc := &stubCheckoutSvc{order: &domain.Order{ID: "order-1"}}
	router := testRouter(t, Deps{CheckoutSvc: checkoutSvc})

	body := `{"lines":[{"productId":"p1","quantity":1,"unitBasePriceCents":5000}],"deliveryDate":"2026-09-14","zoneId":"zone-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if checkoutSvc.lastInput.Promo != nil {
		t.Fatalf("expected no promo state, got %+v", checkoutSvc.lastInput.Promo)
	}
}

func TestCheckoutBelowMinimum(t *testing.T) {
	checkoutSvc := &stubCheckoutSvc{err: &domain.BelowMinimumError{MinimumCents: 3000, NetCents: 2999}}
	router := testRouter(t, Deps{CheckoutSvc: checkoutSvc})

	body := `{"lines":[{"productId":"p1","quantity":1,"unitBasePriceCents":2999}],"deliveryDate":"2026-09-14","zoneId":"zone-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp struct {
		ShortfallCents int64 `json:"shortfallCents"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.ShortfallCents != 1 {
		t.Fatalf("expected shortfall 1, got %d", resp.ShortfallCents)
	}
}

func TestCheckoutUnknownZone(t *testing.T) {
	checkoutSvc := &stubCheckoutSvc{err: domain.ErrZoneNotFound}
	router := testRouter(t, Deps{CheckoutSvc: checkoutSvc})

	body := `{"lines":[{"productId":"p1","quantity":1,"unitBasePriceCents":5000}],"deliveryDate":"2026-09-14","zoneId":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCheckoutValidationError(t *testing.T) {
	checkoutSvc := &stubCheckoutSvc{err: domain.ValidationError("cart is empty")}
	router := testRouter(t, Deps{CheckoutSvc: checkoutSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"lines":[],"deliveryDate":"2026-09-14","zoneId":"z"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	router := testRouter(t, Deps{OrderSvc: &stubOrderSvc{getErr: domain.ErrNotFound}})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPaymentCallbackRequiresAuth(t *testing.T) {
	router := testRouter(t, Deps{AdminToken: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", strings.NewReader(`{"orderId":"o1","status":"paid"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPaymentCallbackTransition(t *testing.T) {
	orderSvc := &stubOrderSvc{order: &domain.Order{ID: "o1", Status: domain.OrderPaid}}
	router := testRouter(t, Deps{OrderSvc: orderSvc, AdminToken: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", strings.NewReader(`{"orderId":"o1","status":"paid"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPaymentCallbackConflict(t *testing.T) {
	orderSvc := &stubOrderSvc{setErr: domain.ErrOrderFinalized}
	router := testRouter(t, Deps{OrderSvc: orderSvc, AdminToken: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", strings.NewReader(`{"orderId":"o1","status":"failed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	router := testRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodPost, "/admin/zones", strings.NewReader(`{"name":"Center","feeCents":300}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminRejectsWrongToken(t *testing.T) {
	router := testRouter(t, Deps{AdminToken: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/admin/zones", strings.NewReader(`{"name":"Center","feeCents":300}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBuildRouterMissingDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatalf("expected error for missing services")
	}
}
