package pricing

import (
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CalculateSubtotal suma precio de venta * cantidad de cada línea.
func CalculateSubtotal(items []entity.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Product.SellingPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// CustomerTotalInput componentes del total del cliente.
type CustomerTotalInput struct {
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal // costo real (0 si el envío es gratis)
	DiscountAmount decimal.Decimal
	CustomerFee    decimal.Decimal
}

// CalculateCustomerTotal subtotal + envío - descuento + recargo. Es la base de la comisión de pago.
func CalculateCustomerTotal(in CustomerTotalInput) decimal.Decimal {
	return in.Subtotal.Add(in.ShippingCost).Sub(in.DiscountAmount).Add(in.CustomerFee)
}
