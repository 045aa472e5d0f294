// Package pricing contiene los servicios de dominio que calculan los montos de un pedido:
// subtotal, descuentos, envío, total del cliente y comisiones de pago. Son funciones puras
// sobre decimal.Decimal; el redondeo es responsabilidad de la presentación.
package pricing

import (
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculatePaymentFees calcula la comisión de la pasarela para amount.
// comisión = (amount * %/100 + fijo) * (1 + impuesto/100)
//
// amount debe ser el total que paga el cliente (después de envío, descuento y recargo),
// nunca el subtotal. Montos negativos producen comisión con el mismo signo.
func CalculatePaymentFees(pm *entity.PaymentMethod, amount decimal.Decimal) decimal.Decimal {
	if pm == nil {
		return decimal.Zero
	}
	gatewayFee := amount.Mul(pm.FeePercentage).Div(hundred)
	baseFees := gatewayFee.Add(pm.FeeFixed)
	tax := baseFees.Mul(pm.TaxRate).Div(hundred)
	return baseFees.Add(tax)
}
