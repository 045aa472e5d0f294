// Package profit implementa el reparto de ganancias entre socios.
//
// Cada socio se queda con el 100% de la ganancia bruta de sus propios productos. Los costos
// comunes del pedido (envío, comisiones de pago, descuentos) se reparten entre las líneas en
// proporción a su participación en el subtotal (ingreso antes de descuento):
//
//	proporción   = ingresoLínea / subtotal        (0 si subtotal = 0)
//	gastoLínea   = (envío + comisiones + descuento) * ingresoLínea / subtotal
//	netoLínea    = (ingresoLínea - costoLínea) - gastoLínea
//	parteSocio   = Σ netoLínea de sus productos
package profit

import (
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SharedCosts costos comunes del pedido a repartir entre líneas.
type SharedCosts struct {
	ShippingCost   decimal.Decimal
	PaymentFees    decimal.Decimal
	DiscountAmount decimal.Decimal
}

// Total suma de los costos comunes.
func (c SharedCosts) Total() decimal.Decimal {
	return c.ShippingCost.Add(c.PaymentFees).Add(c.DiscountAmount)
}

// ItemProfit resultado por línea.
type ItemProfit struct {
	ProductID         string
	ProductName       string
	Owner             entity.Owner
	Revenue           decimal.Decimal
	Cost              decimal.Decimal
	GrossProfit       decimal.Decimal
	RevenueProportion decimal.Decimal
	ExpenseShare      decimal.Decimal
	NetProfit         decimal.Decimal
}

// OwnerShare parte de un socio en un pedido.
type OwnerShare struct {
	Owner       entity.Owner
	NetProfit   decimal.Decimal
	ProductCost decimal.Decimal
}

// TotalEarnings ganancia + reembolso del costo de sus productos (solo para el reporte de ingresos).
func (s OwnerShare) TotalEarnings() decimal.Decimal {
	return s.NetProfit.Add(s.ProductCost)
}

// Result reparto completo de un pedido. Shares sigue el orden de aparición de los socios en las líneas.
type Result struct {
	Items  []ItemProfit
	Shares []OwnerShare
}

// NetProfit suma de las partes de todos los socios.
func (r Result) NetProfit() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Shares {
		total = total.Add(s.NetProfit)
	}
	return total
}

// Share parte del socio indicado (cero si no tiene productos en el pedido).
func (r Result) Share(owner entity.Owner) OwnerShare {
	for _, s := range r.Shares {
		if s.Owner == owner {
			return s
		}
	}
	return OwnerShare{Owner: owner, NetProfit: decimal.Zero, ProductCost: decimal.Zero}
}

// Distribute reparte la ganancia neta del pedido entre los dueños de sus productos.
func Distribute(items []entity.OrderItem, costs SharedCosts) Result {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(lineRevenue(it))
	}
	shared := costs.Total()

	res := Result{Items: make([]ItemProfit, 0, len(items))}
	index := make(map[entity.Owner]int)
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		revenue := lineRevenue(it)
		cost := it.Product.Cost.Mul(qty)
		gross := revenue.Sub(cost)

		proportion, expense := decimal.Zero, decimal.Zero
		if !subtotal.IsZero() {
			proportion = revenue.Div(subtotal)
			expense = shared.Mul(revenue).Div(subtotal)
		}
		net := gross.Sub(expense)

		res.Items = append(res.Items, ItemProfit{
			ProductID:         it.Product.ID,
			ProductName:       it.Product.Name,
			Owner:             it.Product.Owner,
			Revenue:           revenue,
			Cost:              cost,
			GrossProfit:       gross,
			RevenueProportion: proportion,
			ExpenseShare:      expense,
			NetProfit:         net,
		})

		i, ok := index[it.Product.Owner]
		if !ok {
			i = len(res.Shares)
			index[it.Product.Owner] = i
			res.Shares = append(res.Shares, OwnerShare{Owner: it.Product.Owner, NetProfit: decimal.Zero, ProductCost: decimal.Zero})
		}
		res.Shares[i].NetProfit = res.Shares[i].NetProfit.Add(net)
		res.Shares[i].ProductCost = res.Shares[i].ProductCost.Add(cost)
	}
	return res
}

func lineRevenue(it entity.OrderItem) decimal.Decimal {
	return it.Product.SellingPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
