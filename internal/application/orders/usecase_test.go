package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/orders"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...any) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), append([]any{"esperado %s, obtenido %s", want, got.String()}, msg...)...)
}

type fixedThreshold string

func (f fixedThreshold) FreeShippingThreshold(context.Context) decimal.Decimal {
	return decimal.RequireFromString(string(f))
}

var today = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

type env struct {
	ctx      context.Context
	products *memory.ProductRepo
	offers   *memory.Store[entity.Offer, *entity.Offer]
	orders   *memory.OrderRepo
	uc       *orders.UseCase
}

func newEnv(t *testing.T, autoDetect bool) *env {
	t.Helper()
	ctx := context.Background()
	products := memory.NewProductRepository()
	shipping := memory.NewShippingMethodRepository()
	payments := memory.NewPaymentMethodRepository()
	offers := memory.NewOfferRepository()
	orderRepo := memory.NewOrderRepository()

	require.NoError(t, products.Upsert(ctx, &entity.Product{ID: "p1", Name: "Serum", SKU: "SR-1", Cost: d("30"), SellingPrice: d("60"), Owner: entity.OwnerYassir}))
	require.NoError(t, products.Upsert(ctx, &entity.Product{ID: "p2", Name: "Cream", SKU: "CR-2", Cost: d("20"), SellingPrice: d("35"), Owner: entity.OwnerBasim}))
	require.NoError(t, shipping.Upsert(ctx, &entity.ShippingMethod{ID: "s1", Name: "Aramex", Cost: d("15"), Active: true}))
	require.NoError(t, payments.Upsert(ctx, &entity.PaymentMethod{ID: "m1", Name: "Mada", FeePercentage: d("1"), FeeFixed: d("1"), TaxRate: d("15"), Active: true}))

	calc := orders.NewCalculator(fixedThreshold("200"), offers, autoDetect,
		orders.WithClock(func() time.Time { return today }))
	return &env{
		ctx:      ctx,
		products: products,
		offers:   offers,
		orders:   orderRepo,
		uc:       orders.NewUseCase(orderRepo, products, shipping, payments, calc),
	}
}

func basicRequest(number string) dto.OrderRequest {
	return dto.OrderRequest{
		OrderNumber:      number,
		CustomerName:     "Ahmed",
		Items:            []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: 2}},
		ShippingMethodID: "s1",
		PaymentMethodID:  "m1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Calculate (vista previa)
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_PedidoBasico(t *testing.T) {
	e := newEnv(t, true)
	res, err := e.uc.Calculate(e.ctx, basicRequest(""))
	require.NoError(t, err)

	assertDec(t, "130", res.Subtotal)
	assert.False(t, res.IsFreeShipping)
	assertDec(t, "200", res.FreeShippingLimit)
	assertDec(t, "15", res.ActualShippingCost)
	assertDec(t, "145", res.CustomerTotal)
	assertDec(t, "2.8175", res.PaymentFees)
	assertDec(t, "42.1825", res.NetProfit)
	require.Len(t, res.Shares, 2)
	assert.Equal(t, "yassir", res.Shares[0].Owner)
	assert.Equal(t, "basim", res.Shares[1].Owner)
	assertDec(t, res.NetProfit.String(), res.Shares[0].NetProfit.Add(res.Shares[1].NetProfit), "la suma de las partes es la ganancia neta")
}

func TestCalculate_EnvioGratisPorUmbral(t *testing.T) {
	e := newEnv(t, true)
	req := basicRequest("")
	req.Items = []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4}}
	f := false
	req.FreeShipping = &f

	res, err := e.uc.Calculate(e.ctx, req)
	require.NoError(t, err)
	assert.True(t, res.IsFreeShipping, "con detección automática la marca manual se ignora")
	assertDec(t, "0", res.ActualShippingCost)
	assertDec(t, "15", res.ShippingCost, "el reparto usa el costo nominal")
	assertDec(t, "240", res.CustomerTotal)
}

func TestCalculate_MarcaManualSinDeteccion(t *testing.T) {
	e := newEnv(t, false)
	req := basicRequest("")
	tr := true
	req.FreeShipping = &tr

	res, err := e.uc.Calculate(e.ctx, req)
	require.NoError(t, err)
	assert.True(t, res.IsFreeShipping)
	assertDec(t, "130", res.CustomerTotal)
}

func TestCalculate_OfertaVigenteSeSumaAlDescuento(t *testing.T) {
	e := newEnv(t, true)
	require.NoError(t, e.offers.Upsert(e.ctx, &entity.Offer{
		ID: "o1", Name: "Crema a mitad", TriggerProductID: "p1", TargetProductID: "p2",
		DiscountType: entity.DiscountPercentage, DiscountValue: d("50"), Active: true,
	}))
	req := basicRequest("")
	req.Discount = &dto.DiscountDTO{Type: "fixed", Value: d("5")}

	res, err := e.uc.Calculate(e.ctx, req)
	require.NoError(t, err)
	require.NotNil(t, res.AppliedOffer)
	assert.Equal(t, "o1", res.AppliedOffer.OfferID)
	assertDec(t, "35", res.AppliedOffer.DiscountAmount)
	assertDec(t, "5", res.ManualDiscount)
	assertDec(t, "40", res.DiscountAmount)
	assertDec(t, "105", res.CustomerTotal)
}

func TestCalculate_OfertaVencida_NoAplica(t *testing.T) {
	e := newEnv(t, true)
	end := today.AddDate(0, 0, -1)
	require.NoError(t, e.offers.Upsert(e.ctx, &entity.Offer{
		ID: "o1", TriggerProductID: "p1", TargetProductID: "p2",
		DiscountType: entity.DiscountFixed, DiscountValue: d("10"), Active: true, EndDate: &end,
	}))

	res, err := e.uc.Calculate(e.ctx, basicRequest(""))
	require.NoError(t, err)
	assert.Nil(t, res.AppliedOffer)
	assertDec(t, "0", res.DiscountAmount)
}

func TestCalculate_EntradasInvalidas(t *testing.T) {
	e := newEnv(t, true)

	cases := map[string]func(*dto.OrderRequest){
		"cantidad negativa":    func(r *dto.OrderRequest) { r.Items[0].Quantity = -1 },
		"producto inexistente": func(r *dto.OrderRequest) { r.Items[0].ProductID = "nope" },
		"sin productos":        func(r *dto.OrderRequest) { r.Items = []dto.OrderItemRequest{{ProductID: "p1", Quantity: 0}} },
		"envío inexistente":    func(r *dto.OrderRequest) { r.ShippingMethodID = "nope" },
		"pago inexistente":     func(r *dto.OrderRequest) { r.PaymentMethodID = "nope" },
		"descuento inválido":   func(r *dto.OrderRequest) { r.Discount = &dto.DiscountDTO{Type: "percentage", Value: d("120")} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := basicRequest("")
			mutate(&req)
			_, err := e.uc.Calculate(e.ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCalculate_LineasRepetidasSeAcumulan(t *testing.T) {
	e := newEnv(t, true)
	req := basicRequest("")
	req.Items = []dto.OrderItemRequest{{ProductID: "p2", Quantity: 1}, {ProductID: "p1", Quantity: 0}, {ProductID: "p2", Quantity: 2}}

	res, err := e.uc.Calculate(e.ctx, req)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assertDec(t, "105", res.Subtotal)
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_GuardaSnapshotDelProducto(t *testing.T) {
	e := newEnv(t, true)
	created, err := e.uc.Create(e.ctx, basicRequest("A-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entity.OrderSourceManual, created.Source)
	assert.True(t, created.Date.Equal(today), "sin fecha se usa la hora actual")
	assertDec(t, "145", created.Total)

	p, _ := e.products.GetByID(e.ctx, "p1")
	p.SellingPrice = d("999")
	require.NoError(t, e.products.Upsert(e.ctx, p))

	got, err := e.uc.GetByID(e.ctx, created.ID)
	require.NoError(t, err)
	assertDec(t, "60", got.Items[0].SellingPrice, "el pedido no sigue al catálogo")
	assertDec(t, "145", got.Total)
}

func TestCreate_SinNumero_Invalido(t *testing.T) {
	e := newEnv(t, true)
	_, err := e.uc.Create(e.ctx, basicRequest("  "))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_NumeroRepetido(t *testing.T) {
	e := newEnv(t, true)
	_, err := e.uc.Create(e.ctx, basicRequest("A-1"))
	require.NoError(t, err)
	_, err = e.uc.Create(e.ctx, basicRequest("A-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, orders.IsValidation(err))
}

func TestUpdate_RecalculaYConservaFecha(t *testing.T) {
	e := newEnv(t, true)
	date := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	req := basicRequest("A-1")
	req.Date = &date
	created, err := e.uc.Create(e.ctx, req)
	require.NoError(t, err)

	upd := basicRequest("A-1")
	upd.Items = []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4}}
	got, err := e.uc.Update(e.ctx, created.ID, upd)
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))
	assert.True(t, got.IsFreeShipping)
	assertDec(t, "240", got.Total)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdate_NumeroDeOtroPedido(t *testing.T) {
	e := newEnv(t, true)
	_, err := e.uc.Create(e.ctx, basicRequest("A-1"))
	require.NoError(t, err)
	second, err := e.uc.Create(e.ctx, basicRequest("A-2"))
	require.NoError(t, err)

	_, err = e.uc.Update(e.ctx, second.ID, basicRequest("A-1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// rejectingOrders acepta lecturas y rechaza toda escritura.
type rejectingOrders struct{ *memory.OrderRepo }

func (rejectingOrders) Upsert(context.Context, *entity.Order) error { return errors.New("escritura rechazada") }

func TestUpdate_FalloAlGuardar_NoAlteraElPedidoGuardado(t *testing.T) {
	e := newEnv(t, true)
	created, err := e.uc.Create(e.ctx, basicRequest("A-1"))
	require.NoError(t, err)

	upd := basicRequest("A-1")
	upd.Items = []dto.OrderItemRequest{{ProductID: "p2", Quantity: 5}}
	_, err = e.uc.WithOrders(rejectingOrders{e.orders}).Update(e.ctx, created.ID, upd)
	require.Error(t, err)

	stored, err := e.orders.GetByID(e.ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "p1", stored.Items[0].Product.ID)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.Equal(t, "p2", stored.Items[1].Product.ID)
	assert.Equal(t, 2, stored.Items[1].Quantity)
}

func TestListYDelete(t *testing.T) {
	e := newEnv(t, true)
	feb := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	req := basicRequest("A-1")
	req.Date = &feb
	first, err := e.uc.Create(e.ctx, req)
	require.NoError(t, err)
	_, err = e.uc.Create(e.ctx, basicRequest("A-2"))
	require.NoError(t, err)

	all, err := e.uc.List(e.ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	from, to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	march, err := e.uc.List(e.ctx, &from, &to)
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, "A-2", march[0].OrderNumber)

	require.NoError(t, e.uc.Delete(e.ctx, first.ID))
	assert.ErrorIs(t, e.uc.Delete(e.ctx, first.ID), domain.ErrNotFound)
	_, err = e.uc.GetByID(e.ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
