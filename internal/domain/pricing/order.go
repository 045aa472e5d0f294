package pricing

import (
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/shopspring/decimal"
)

// OrderInput datos crudos de un pedido para el orquestador.
type OrderInput struct {
	Items                 []entity.OrderItem
	ShippingMethod        *entity.ShippingMethod
	PaymentMethod         *entity.PaymentMethod
	Discount              *entity.Discount
	FreeShippingThreshold decimal.Decimal
	// Offers y OrderDate son opcionales: sin ofertas no se evalúa ninguna promoción.
	Offers       []entity.Offer
	OrderDate    time.Time
	FreeShipping FreeShippingPolicy
}

// OrderCalculation resultado completo del cálculo de un pedido. Nunca se persiste tal cual.
type OrderCalculation struct {
	Subtotal           decimal.Decimal
	ManualDiscount     decimal.Decimal
	AppliedOffer       *entity.AppliedOffer
	DiscountAmount     decimal.Decimal // manual + oferta
	IsFreeShipping     bool
	ShippingCost       decimal.Decimal // nominal del método
	ActualShippingCost decimal.Decimal
	CustomerFee        decimal.Decimal
	CustomerTotal      decimal.Decimal
	PaymentFees        decimal.Decimal
	NetProfit          decimal.Decimal
	Profit             profit.Result
}

// CalculateCompleteOrder compone todos los cálculos en un orden estricto; cada paso
// usa solo salidas de los pasos anteriores:
//
//	subtotal → descuento → envío gratis → envío real → recargo → total cliente →
//	comisiones (sobre el total cliente) → reparto (con envío nominal) → ganancia neta
//
// Es la única ruta que produce los campos financieros de un pedido persistido.
func CalculateCompleteOrder(in OrderInput) OrderCalculation {
	var out OrderCalculation

	out.Subtotal = CalculateSubtotal(in.Items)

	out.ManualDiscount = CalculateDiscountAmount(out.Subtotal, in.Discount)
	out.DiscountAmount = out.ManualDiscount
	if len(in.Offers) > 0 {
		out.AppliedOffer = GetBestOffer(in.Items, in.Offers, in.OrderDate)
		if out.AppliedOffer != nil {
			out.DiscountAmount = out.DiscountAmount.Add(out.AppliedOffer.DiscountAmount)
		}
	}

	detected := DetermineIsFreeShipping(out.Subtotal, out.DiscountAmount, in.FreeShippingThreshold)
	out.IsFreeShipping = in.FreeShipping.Resolve(detected)

	out.ShippingCost = decimal.Zero
	if in.ShippingMethod != nil {
		out.ShippingCost = in.ShippingMethod.Cost
	}
	out.ActualShippingCost = CalculateActualShippingCost(out.ShippingCost, out.IsFreeShipping)

	out.CustomerFee = decimal.Zero
	if in.PaymentMethod != nil {
		out.CustomerFee = in.PaymentMethod.CustomerFee
	}

	out.CustomerTotal = CalculateCustomerTotal(CustomerTotalInput{
		Subtotal:       out.Subtotal,
		ShippingCost:   out.ActualShippingCost,
		DiscountAmount: out.DiscountAmount,
		CustomerFee:    out.CustomerFee,
	})

	out.PaymentFees = CalculatePaymentFees(in.PaymentMethod, out.CustomerTotal)

	// El comercio paga el envío al transportista aunque el cliente no lo pague:
	// el reparto usa el costo nominal.
	out.Profit = profit.Distribute(in.Items, profit.SharedCosts{
		ShippingCost:   out.ShippingCost,
		PaymentFees:    out.PaymentFees,
		DiscountAmount: out.DiscountAmount,
	})
	out.NetProfit = out.Profit.NetProfit()
	return out
}

// ApplyTo copia los campos financieros del cálculo al pedido.
func (c OrderCalculation) ApplyTo(o *entity.Order) {
	o.Subtotal = c.Subtotal
	o.ShippingCost = c.ShippingCost
	o.PaymentFees = c.PaymentFees
	o.DiscountAmount = c.DiscountAmount
	o.CustomerFee = c.CustomerFee
	o.Total = c.CustomerTotal
	o.NetProfit = c.NetProfit
	o.IsFreeShipping = c.IsFreeShipping
	o.AppliedOffer = c.AppliedOffer
}

// SharedCostsOf costos comunes de un pedido ya persistido, para recalcular el reparto en reportes.
func SharedCostsOf(o *entity.Order) profit.SharedCosts {
	return profit.SharedCosts{
		ShippingCost:   o.ShippingCost,
		PaymentFees:    o.PaymentFees,
		DiscountAmount: o.DiscountAmount,
	}
}
