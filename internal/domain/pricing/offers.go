package pricing

import (
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// FindApplicableOffers filtra las ofertas activas en la fecha del pedido cuyo producto
// disparador está en el pedido. Conserva el orden de entrada.
func FindApplicableOffers(items []entity.OrderItem, offers []entity.Offer, today time.Time) []entity.Offer {
	var out []entity.Offer
	for _, o := range offers {
		if !offerActiveOn(o, today) {
			continue
		}
		if findLine(items, o.TriggerProductID) < 0 {
			continue
		}
		out = append(out, o)
	}
	return out
}

// GetBestOffer devuelve la oferta aplicable con mayor descuento sobre su línea objetivo.
// En empate gana la primera encontrada. nil si ninguna produce descuento.
func GetBestOffer(items []entity.OrderItem, offers []entity.Offer, today time.Time) *entity.AppliedOffer {
	var best *entity.AppliedOffer
	for _, o := range FindApplicableOffers(items, offers, today) {
		applied := ApplyOfferToItems(o, items)
		if applied == nil || !applied.DiscountAmount.IsPositive() {
			continue
		}
		if best == nil || applied.DiscountAmount.GreaterThan(best.DiscountAmount) {
			best = applied
		}
	}
	return best
}

// CalculateOfferDiscount descuento unitario de una oferta sobre originalPrice.
// El fijo se limita al precio: una oferta nunca descuenta más que el propio artículo.
func CalculateOfferDiscount(o entity.Offer, originalPrice decimal.Decimal) decimal.Decimal {
	switch o.DiscountType {
	case entity.DiscountPercentage:
		return originalPrice.Mul(o.DiscountValue).Div(hundred)
	case entity.DiscountFixed:
		return decimal.Min(o.DiscountValue, originalPrice)
	default:
		return decimal.Zero
	}
}

// ApplyOfferToItems calcula el descuento de la oferta sobre la línea objetivo
// (unitario * cantidad). No modifica los precios de las líneas.
func ApplyOfferToItems(o entity.Offer, items []entity.OrderItem) *entity.AppliedOffer {
	idx := findLine(items, o.TargetProductID)
	if idx < 0 {
		return nil
	}
	line := items[idx]
	unit := CalculateOfferDiscount(o, line.Product.SellingPrice)
	return &entity.AppliedOffer{
		OfferID:          o.ID,
		OfferName:        o.Name,
		TriggerProductID: o.TriggerProductID,
		TargetProductID:  o.TargetProductID,
		UnitDiscount:     unit,
		Quantity:         line.Quantity,
		DiscountAmount:   unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
	}
}

func findLine(items []entity.OrderItem, productID string) int {
	if productID == "" {
		return -1
	}
	for i, it := range items {
		if it.Product.ID == productID && it.Quantity > 0 {
			return i
		}
	}
	return -1
}

// offerActiveOn evalúa la vigencia por día calendario: inicio <= hoy <= fin, ambos opcionales.
func offerActiveOn(o entity.Offer, today time.Time) bool {
	if !o.Active {
		return false
	}
	day := calendarDay(today)
	if o.StartDate != nil && day.Before(calendarDay(*o.StartDate)) {
		return false
	}
	if o.EndDate != nil && day.After(calendarDay(*o.EndDate)) {
		return false
	}
	return true
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
