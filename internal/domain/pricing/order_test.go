package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/pricing"
)

func scenarioA() pricing.OrderInput {
	return pricing.OrderInput{
		Items:                 []entity.OrderItem{item("p1", "50", "80", 1, entity.OwnerYassir)},
		ShippingMethod:        &entity.ShippingMethod{ID: "s1", Name: "Aramex", Cost: d("15"), Active: true},
		PaymentMethod:         &entity.PaymentMethod{ID: "m1", Name: "Mada", FeePercentage: d("1"), FeeFixed: d("1"), TaxRate: d("15"), CustomerFee: decimal.Zero},
		FreeShippingThreshold: d("100"),
	}
}

func TestCalculateCompleteOrder_EscenarioA(t *testing.T) {
	res := pricing.CalculateCompleteOrder(scenarioA())

	assertDec(t, "80", res.Subtotal)
	assert.True(t, res.DiscountAmount.IsZero())
	assert.False(t, res.IsFreeShipping, "80 < 100")
	assertDec(t, "15", res.ActualShippingCost)
	assertDec(t, "95", res.CustomerTotal)
	assertDec(t, "2.2425", res.PaymentFees)
	assertDec(t, "12.7575", res.NetProfit)
	assertDec(t, "12.7575", res.Profit.Share(entity.OwnerYassir).NetProfit)
	assert.True(t, res.Profit.Share(entity.OwnerBasim).NetProfit.IsZero())
}

func TestCalculateCompleteOrder_EscenarioB_EnvioGratis(t *testing.T) {
	in := scenarioA()
	in.Items = append(in.Items, item("p2", "30", "50", 1, entity.OwnerBasim))

	res := pricing.CalculateCompleteOrder(in)
	assertDec(t, "130", res.Subtotal)
	assert.True(t, res.IsFreeShipping)
	assert.True(t, res.ActualShippingCost.IsZero())
	assertDec(t, "15", res.ShippingCost, "el costo nominal se conserva para el reparto")
	assertDec(t, "130", res.CustomerTotal)
}

func TestCalculateCompleteOrder_EscenarioC_DescuentoFijo(t *testing.T) {
	in := scenarioA()
	in.Items = append(in.Items, item("p2", "30", "50", 1, entity.OwnerBasim))
	in.Discount = &entity.Discount{Type: entity.DiscountFixed, Value: d("20")}

	res := pricing.CalculateCompleteOrder(in)
	assertDec(t, "20", res.DiscountAmount)
	assert.True(t, res.IsFreeShipping, "130 - 20 = 110 >= 100")
	assertDec(t, "110", res.CustomerTotal)
}

func TestCalculateCompleteOrder_ReconciliaTotal(t *testing.T) {
	in := scenarioA()
	in.Items = append(in.Items, item("p2", "12.30", "19.99", 3, entity.OwnerBasim))
	in.Discount = &entity.Discount{Type: entity.DiscountPercentage, Value: d("7")}
	in.PaymentMethod.CustomerFee = d("12")
	in.FreeShippingThreshold = d("500")

	res := pricing.CalculateCompleteOrder(in)
	want := res.Subtotal.Add(res.ActualShippingCost).Sub(res.DiscountAmount).Add(res.CustomerFee)
	assert.True(t, want.Equal(res.CustomerTotal))
	assert.True(t, pricing.CalculatePaymentFees(in.PaymentMethod, res.CustomerTotal).Equal(res.PaymentFees),
		"las comisiones se calculan sobre el total del cliente")
}

func TestCalculateCompleteOrder_ConservacionDeGanancia(t *testing.T) {
	in := scenarioA()
	in.Items = []entity.OrderItem{
		item("a", "10.10", "33.33", 1, entity.OwnerYassir),
		item("b", "7", "33.33", 2, entity.OwnerBasim),
		item("c", "1", "3.34", 7, entity.OwnerYassir),
	}
	in.Discount = &entity.Discount{Type: entity.DiscountFixed, Value: d("3.5")}

	res := pricing.CalculateCompleteOrder(in)

	sumItems := decimal.Zero
	for _, it := range res.Profit.Items {
		sumItems = sumItems.Add(it.NetProfit)
	}
	shares := res.Profit.Share(entity.OwnerYassir).NetProfit.Add(res.Profit.Share(entity.OwnerBasim).NetProfit)
	assert.True(t, sumItems.Equal(shares), "Σ netos de línea = Σ partes")
	assert.True(t, shares.Equal(res.NetProfit), "Σ partes = ganancia neta")
}

func TestCalculateCompleteOrder_Determinista(t *testing.T) {
	in := scenarioA()
	in.Discount = &entity.Discount{Type: entity.DiscountPercentage, Value: d("12.5")}
	first := pricing.CalculateCompleteOrder(in)
	second := pricing.CalculateCompleteOrder(in)
	assert.Equal(t, first, second)
}

func TestCalculateCompleteOrder_SinLineas(t *testing.T) {
	in := scenarioA()
	in.Items = nil
	res := pricing.CalculateCompleteOrder(in)
	assert.True(t, res.Subtotal.IsZero())
	assert.True(t, res.NetProfit.IsZero())
	assert.Empty(t, res.Profit.Shares)
}

func TestCalculateCompleteOrder_OfertaSumaAlDescuento(t *testing.T) {
	in := scenarioA()
	in.Items = []entity.OrderItem{
		item("trigger", "20", "60", 1, entity.OwnerYassir),
		item("target", "15", "40", 1, entity.OwnerBasim),
	}
	in.Discount = &entity.Discount{Type: entity.DiscountFixed, Value: d("5")}
	in.Offers = []entity.Offer{offer("o1", entity.DiscountFixed, "50")}
	in.OrderDate = orderDay

	res := pricing.CalculateCompleteOrder(in)
	require.NotNil(t, res.AppliedOffer)
	assertDec(t, "5", res.ManualDiscount)
	assertDec(t, "45", res.DiscountAmount, "5 manual + 40 de la oferta")
	assert.False(t, res.IsFreeShipping, "100 - 45 < 100")
}

func TestCalculateCompleteOrder_PoliticaEnvioManual(t *testing.T) {
	in := scenarioA()
	free := true
	in.FreeShipping = pricing.FreeShippingPolicy{AutoDetect: false, Manual: &free}
	assert.True(t, pricing.CalculateCompleteOrder(in).IsFreeShipping)

	in.FreeShipping.AutoDetect = true
	assert.False(t, pricing.CalculateCompleteOrder(in).IsFreeShipping, "con auto-detección la marca manual se revierte")
}

func TestOrderCalculation_ApplyTo(t *testing.T) {
	res := pricing.CalculateCompleteOrder(scenarioA())
	var o entity.Order
	res.ApplyTo(&o)
	assertDec(t, "95", o.Total)
	assertDec(t, "15", o.ShippingCost)
	assertDec(t, "12.7575", o.NetProfit)

	recalc := pricing.SharedCostsOf(&o)
	assertDec(t, "17.2425", recalc.Total())
}
