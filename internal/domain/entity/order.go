package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen del pedido.
const (
	OrderSourceManual = "manual"
	OrderSourceSalla  = "salla"
)

// OrderItem línea de pedido: copia del producto + cantidad.
type OrderItem struct {
	Product  Product
	Quantity int
}

// Order pedido persistido. Los campos financieros solo los produce el orquestador
// (pricing.CalculateCompleteOrder).
//
// Invariante: Total = Subtotal + (IsFreeShipping ? 0 : ShippingCost) - DiscountAmount + CustomerFee.
type Order struct {
	ID             string
	OrderNumber    string
	CustomerName   string
	Date           time.Time
	Items          []OrderItem
	ShippingMethod *ShippingMethod
	PaymentMethod  *PaymentMethod
	Discount       *Discount
	AppliedOffer   *AppliedOffer
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal // costo nominal del método, antes de envío gratis
	PaymentFees    decimal.Decimal
	DiscountAmount decimal.Decimal
	CustomerFee    decimal.Decimal
	Total          decimal.Decimal
	NetProfit      decimal.Decimal
	IsFreeShipping bool
	Source         string
	SourceTotal    *decimal.Decimal // total informado por la plataforma externa (solo referencia)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (o *Order) Key() string { return o.ID }

func (o *Order) Stamp(id string, now time.Time) {
	o.ID, o.CreatedAt, o.UpdatedAt = stamp(o.ID, o.CreatedAt, id, now)
}
