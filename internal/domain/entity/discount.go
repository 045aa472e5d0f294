package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountType tipo de descuento.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount descuento manual a nivel de pedido.
type Discount struct {
	Type  DiscountType
	Value decimal.Decimal
	Code  string
}

var hundred = decimal.NewFromInt(100)

// Validate verifica tipo y rango: porcentaje entre 0 y 100, fijo no negativo.
// El fijo no se limita al monto base (política del descuento manual).
func (d Discount) Validate() error {
	switch d.Type {
	case DiscountPercentage:
		if d.Value.IsNegative() || d.Value.GreaterThan(hundred) {
			return fmt.Errorf("porcentaje de descuento fuera de rango: %s", d.Value)
		}
	case DiscountFixed:
		if d.Value.IsNegative() {
			return fmt.Errorf("descuento fijo negativo: %s", d.Value)
		}
	default:
		return fmt.Errorf("tipo de descuento desconocido: %q", d.Type)
	}
	return nil
}
