package promo

import (
	"context"
	"errors"
	"strings"

	"flowershop-api/internal/domain"
	"flowershop-api/internal/pricing"
	"flowershop-api/internal/promotoken"
)

// Service is the promo-code ledger for a customer session. The ledger
// holds at most one applied code, carried entirely in a signed token
// the transport layer stores client-side.
type Service struct {
	codes codeRepo
	codec promotoken.Codec
}

type codeRepo interface {
	GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error)
}

func New(codes codeRepo, codec promotoken.Codec) *Service {
	return &Service{codes: codes, codec: codec}
}

// Apply validates the code against the catalog and, on success,
// returns the new ledger state with its encoded token. On failure the
// ledger stays empty and no token is issued.
func (s *Service) Apply(ctx context.Context, code string) (domain.PromoState, string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.PromoState{}, "", domain.ErrInvalidPromoCode
	}
	found, err := s.codes.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PromoState{}, "", domain.ErrInvalidPromoCode
		}
		return domain.PromoState{}, "", err
	}
	state := domain.PromoState{Code: found.Code, DiscountPercent: found.DiscountPercent}
	token, err := s.codec.Encode(state)
	if err != nil {
		return domain.PromoState{}, "", err
	}
	return state, token, nil
}

// Decode recovers the ledger state from a client-held token. A missing
// or tampered token is an empty ledger, not an error.
func (s *Service) Decode(token string) (domain.PromoState, bool) {
	if token == "" {
		return domain.PromoState{}, false
	}
	state, err := s.codec.Decode(token)
	if err != nil {
		return domain.PromoState{}, false
	}
	return state, true
}

// DiscountAmount recomputes the absolute discount from the current
// subtotal, so the code's value tracks cart changes made after apply.
func (s *Service) DiscountAmount(state domain.PromoState, subtotalCents int64) int64 {
	return pricing.DiscountAmount(subtotalCents, state.DiscountPercent)
}
