package profit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(id, cost, price string, qty int, owner entity.Owner) entity.OrderItem {
	return entity.OrderItem{
		Product:  entity.Product{ID: id, Name: id, Cost: d(cost), SellingPrice: d(price), Owner: owner},
		Quantity: qty,
	}
}

func TestDistribute_ProporcionalAlIngreso(t *testing.T) {
	items := []entity.OrderItem{
		line("y", "50", "75", 1, entity.OwnerYassir), // 75% del ingreso
		line("b", "10", "25", 1, entity.OwnerBasim),  // 25% del ingreso
	}
	res := profit.Distribute(items, profit.SharedCosts{
		ShippingCost: d("20"), PaymentFees: d("4"), DiscountAmount: d("16"),
	})

	require.Len(t, res.Items, 2)
	assert.True(t, d("0.75").Equal(res.Items[0].RevenueProportion))
	assert.True(t, d("30").Equal(res.Items[0].ExpenseShare), "75% de 40")
	assert.True(t, d("10").Equal(res.Items[1].ExpenseShare), "25% de 40")

	assert.True(t, d("-5").Equal(res.Share(entity.OwnerYassir).NetProfit), "25 - 30")
	assert.True(t, d("5").Equal(res.Share(entity.OwnerBasim).NetProfit), "15 - 10")
	assert.True(t, decimal.Zero.Equal(res.NetProfit()))
}

func TestDistribute_UnSoloDuenoAsumeTodo(t *testing.T) {
	items := []entity.OrderItem{
		line("a", "10", "30", 2, entity.OwnerBasim),
		line("b", "5", "10", 1, entity.OwnerBasim),
	}
	res := profit.Distribute(items, profit.SharedCosts{ShippingCost: d("15"), PaymentFees: d("2"), DiscountAmount: decimal.Zero})
	require.Len(t, res.Shares, 1)
	assert.True(t, d("28").Equal(res.Share(entity.OwnerBasim).NetProfit), "(40+5) - 17")
	assert.True(t, res.Share(entity.OwnerYassir).NetProfit.IsZero())
}

func TestDistribute_SubtotalCeroNoDivide(t *testing.T) {
	items := []entity.OrderItem{line("free", "3", "0", 2, entity.OwnerYassir)}
	res := profit.Distribute(items, profit.SharedCosts{ShippingCost: d("15"), PaymentFees: decimal.Zero, DiscountAmount: decimal.Zero})
	assert.True(t, res.Items[0].RevenueProportion.IsZero())
	assert.True(t, res.Items[0].ExpenseShare.IsZero())
	assert.True(t, d("-6").Equal(res.NetProfit()))
}

func TestDistribute_SinLineas(t *testing.T) {
	res := profit.Distribute(nil, profit.SharedCosts{ShippingCost: d("15")})
	assert.Empty(t, res.Items)
	assert.True(t, res.NetProfit().IsZero())
}

func TestOwnerShare_TotalEarnings(t *testing.T) {
	items := []entity.OrderItem{line("a", "50", "80", 1, entity.OwnerYassir)}
	res := profit.Distribute(items, profit.SharedCosts{ShippingCost: d("15"), PaymentFees: d("2.2425"), DiscountAmount: decimal.Zero})
	share := res.Share(entity.OwnerYassir)
	assert.True(t, d("12.7575").Equal(share.NetProfit))
	assert.True(t, d("62.7575").Equal(share.TotalEarnings()), "ganancia + costo reembolsado")
}

// ── Socios ────────────────────────────────────────────────────────────────────

func TestParseParticipants(t *testing.T) {
	p, err := profit.ParseParticipants("yassir:2, basim")
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, []entity.Owner{entity.OwnerYassir, entity.OwnerBasim}, p.Owners())
	assert.True(t, d("2").Equal(p[0].Weight))
	assert.True(t, d("1").Equal(p[1].Weight))

	_, err = profit.ParseParticipants("yassir:0")
	assert.Error(t, err)
	_, err = profit.ParseParticipants("yassir,yassir")
	assert.Error(t, err)
	_, err = profit.ParseParticipants("shared")
	assert.Error(t, err)
	_, err = profit.ParseParticipants("")
	assert.Error(t, err)
}

func TestSplitExpense(t *testing.T) {
	p := profit.DefaultParticipants()

	own := p.SplitExpense(entity.Expense{Owner: entity.OwnerBasim, Amount: d("40")})
	assert.Len(t, own, 1)
	assert.True(t, d("40").Equal(own[entity.OwnerBasim]))

	shared := p.SplitExpense(entity.Expense{Owner: entity.OwnerShared, Amount: d("100.01")})
	assert.True(t, d("100.01").Equal(shared[entity.OwnerYassir].Add(shared[entity.OwnerBasim])), "la suma es exacta")

	custom := p.SplitExpense(entity.Expense{
		Owner: entity.OwnerShared, Amount: d("200"),
		Splits: map[entity.Owner]decimal.Decimal{entity.OwnerYassir: d("70"), entity.OwnerBasim: d("30")},
	})
	assert.True(t, d("140").Equal(custom[entity.OwnerYassir]))
	assert.True(t, d("60").Equal(custom[entity.OwnerBasim]))
}

func TestSplitExpense_PesosDesiguales(t *testing.T) {
	p, err := profit.ParseParticipants("yassir:1,basim:2")
	require.NoError(t, err)
	split := p.SplitExpense(entity.Expense{Owner: entity.OwnerShared, Amount: d("90")})
	assert.True(t, d("30").Equal(split[entity.OwnerYassir]))
	assert.True(t, d("60").Equal(split[entity.OwnerBasim]))
}
