// Package pricing holds the pure price rules shared by the storefront
// and the checkout pipeline. All amounts are minor units (cents).
package pricing

import "flowershop-api/internal/domain"

// EffectiveUnitPrice returns the price actually charged for one unit
// of the line. A discount applies only when both DiscountPercent and
// DiscountPriceCents are positive; the stored discount price is used
// verbatim so the charge always matches what the customer saw.
// Malformed input never fails, it falls back to the base price.
func EffectiveUnitPrice(line domain.CartLine) int64 {
	if line.DiscountPercent > 0 && line.DiscountPriceCents > 0 {
		return line.DiscountPriceCents
	}
	return line.UnitBasePriceCents
}

// PriceFromPercent suggests a discount price for a given percent off.
// Advisory only (admin UI); charges always come from the stored
// discount price. Percent outside (0,100) returns base unchanged.
func PriceFromPercent(baseCents int64, percent int) int64 {
	if percent <= 0 || percent >= 100 {
		return baseCents
	}
	return roundDiv(baseCents*int64(100-percent), 100)
}

// PriceLines resolves every line and returns the priced lines with the
// cart subtotal.
func PriceLines(lines []domain.CartLine) ([]domain.PricedLine, int64) {
	priced := make([]domain.PricedLine, 0, len(lines))
	var subtotal int64
	for _, line := range lines {
		unit := EffectiveUnitPrice(line)
		total := unit * int64(line.Quantity)
		priced = append(priced, domain.PricedLine{
			CartLine:                line,
			EffectiveUnitPriceCents: unit,
			TotalCents:              total,
		})
		subtotal += total
	}
	return priced, subtotal
}

// DiscountAmount computes the absolute promo discount for a subtotal,
// rounded half-up.
func DiscountAmount(subtotalCents int64, percent int) int64 {
	if percent <= 0 || subtotalCents <= 0 {
		return 0
	}
	return roundDiv(subtotalCents*int64(percent), 100)
}

func roundDiv(v, div int64) int64 {
	return (v + div/2) / div
}
