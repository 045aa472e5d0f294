// Package orders expone el orquestador de pedidos a la aplicación: resuelve la configuración
// (umbral de envío gratis, ofertas vigentes) y delega todo el cálculo en pricing.CalculateCompleteOrder.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/pricing"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// ThresholdSource fuente del umbral de envío gratis (settings.Service en producción).
type ThresholdSource interface {
	FreeShippingThreshold(ctx context.Context) decimal.Decimal
}

// Draft datos de un pedido ya resueltos contra el catálogo, listos para calcular.
type Draft struct {
	OrderNumber        string
	CustomerName       string
	Date               time.Time // cero = ahora
	Items              []entity.OrderItem
	ShippingMethod     *entity.ShippingMethod
	PaymentMethod      *entity.PaymentMethod
	Discount           *entity.Discount
	ManualFreeShipping *bool
}

// Calculator arma el OrderInput (única E/S: umbral y ofertas) y ejecuta el orquestador.
type Calculator struct {
	thresholds ThresholdSource
	offers     repository.OfferRepository
	autoDetect bool
	loc        *time.Location
	now        func() time.Time
}

// CalculatorOption configura el Calculator.
type CalculatorOption func(*Calculator)

// WithLocation zona horaria del calendario de la tienda.
func WithLocation(loc *time.Location) CalculatorOption {
	return func(c *Calculator) { c.loc = loc }
}

// WithClock reloj inyectable.
func WithClock(now func() time.Time) CalculatorOption {
	return func(c *Calculator) { c.now = now }
}

// NewCalculator construye el calculador. autoDetect corresponde a la política de envío gratis.
func NewCalculator(thresholds ThresholdSource, offers repository.OfferRepository, autoDetect bool, opts ...CalculatorOption) *Calculator {
	c := &Calculator{thresholds: thresholds, offers: offers, autoDetect: autoDetect, loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input resuelve la configuración vigente para el borrador.
func (c *Calculator) Input(ctx context.Context, d Draft) (pricing.OrderInput, error) {
	in := pricing.OrderInput{
		Items:                 d.Items,
		ShippingMethod:        d.ShippingMethod,
		PaymentMethod:         d.PaymentMethod,
		Discount:              d.Discount,
		FreeShippingThreshold: c.thresholds.FreeShippingThreshold(ctx),
		OrderDate:             c.orderDate(d.Date),
		FreeShipping:          pricing.FreeShippingPolicy{AutoDetect: c.autoDetect, Manual: d.ManualFreeShipping},
	}
	if c.offers != nil {
		list, err := c.offers.GetAll(ctx)
		if err != nil {
			return pricing.OrderInput{}, fmt.Errorf("listar ofertas: %w", err)
		}
		for _, o := range list {
			if o.Active {
				in.Offers = append(in.Offers, *o)
			}
		}
	}
	return in, nil
}

// Calculate calcula el pedido completo.
func (c *Calculator) Calculate(ctx context.Context, d Draft) (pricing.OrderCalculation, error) {
	in, err := c.Input(ctx, d)
	if err != nil {
		return pricing.OrderCalculation{}, err
	}
	return pricing.CalculateCompleteOrder(in), nil
}

// Now hora actual en la zona de la tienda.
func (c *Calculator) Now() time.Time {
	return c.now().In(c.loc)
}

// orderDate fecha en el calendario local de la tienda (vigencia de ofertas por día).
func (c *Calculator) orderDate(t time.Time) time.Time {
	if t.IsZero() {
		return c.Now()
	}
	return t.In(c.loc)
}
