// Package promotoken encodes the applied promo code as a signed token.
// The state lives entirely in the customer's cookie; the server keeps
// no session row, so a lost cookie simply means re-entering the code.
package promotoken

import (
	"errors"
	"time"

	"flowershop-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid promo token")

// Codec turns promo ledger state into an opaque client-held token and
// back. The storage medium (cookie, header) is the caller's concern.
type Codec interface {
	Encode(state domain.PromoState) (string, error)
	Decode(token string) (domain.PromoState, error)
}

type promoClaims struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
	jwt.RegisteredClaims
}

type hmacCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewHMAC builds a Codec signing with HMAC-SHA256. The token is issued
// and consumed by the same process, so a shared secret suffices.
func NewHMAC(secret []byte, ttl time.Duration) Codec {
	return &hmacCodec{secret: secret, ttl: ttl}
}

func (c *hmacCodec) Encode(state domain.PromoState) (string, error) {
	now := time.Now()
	claims := promoClaims{
		Code:            state.Code,
		DiscountPercent: state.DiscountPercent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *hmacCodec) Decode(token string) (domain.PromoState, error) {
	parsed, err := jwt.ParseWithClaims(token, &promoClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.PromoState{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*promoClaims)
	if !ok || claims.Code == "" || claims.DiscountPercent <= 0 || claims.DiscountPercent > 100 {
		return domain.PromoState{}, ErrInvalidToken
	}
	return domain.PromoState{Code: claims.Code, DiscountPercent: claims.DiscountPercent}, nil
}
