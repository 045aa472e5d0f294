package pricing

import "github.com/shopspring/decimal"

// DetermineIsFreeShipping envío gratis si (subtotal - descuento) >= umbral.
func DetermineIsFreeShipping(subtotal, discountAmount, threshold decimal.Decimal) bool {
	return subtotal.Sub(discountAmount).GreaterThanOrEqual(threshold)
}

// CalculateActualShippingCost costo de envío que se cobra al cliente.
func CalculateActualShippingCost(methodCost decimal.Decimal, isFree bool) decimal.Decimal {
	if isFree {
		return decimal.Zero
	}
	return methodCost
}

// FreeShippingPolicy decide quién gana entre la detección automática y la marca manual.
//
//	AutoDetect = true  → siempre se recalcula contra el umbral (Manual se ignora).
//	AutoDetect = false → Manual si está definido; si no, el valor calculado.
type FreeShippingPolicy struct {
	AutoDetect bool
	Manual     *bool
}

// Resolve aplica la política sobre el valor detectado.
func (p FreeShippingPolicy) Resolve(detected bool) bool {
	if p.AutoDetect || p.Manual == nil {
		return detected
	}
	return *p.Manual
}
