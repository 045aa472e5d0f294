package pricing

import (
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CalculateDiscountAmount monto del descuento manual sobre base.
// El descuento fijo se devuelve tal cual, sin tope contra base (puede dejar el total negativo);
// el tope solo existe en las ofertas (ver CalculateOfferDiscount).
func CalculateDiscountAmount(base decimal.Decimal, d *entity.Discount) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	switch d.Type {
	case entity.DiscountPercentage:
		return base.Mul(d.Value).Div(hundred)
	case entity.DiscountFixed:
		return d.Value
	default:
		return decimal.Zero
	}
}
