package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer promoción automática: si TriggerProductID está en el pedido, se descuenta
// la línea de TargetProductID. Las fechas son inclusivas y opcionales.
type Offer struct {
	ID               string
	Name             string
	TriggerProductID string
	TargetProductID  string
	DiscountType     DiscountType
	DiscountValue    decimal.Decimal
	Active           bool
	StartDate        *time.Time
	EndDate          *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (o *Offer) Key() string { return o.ID }

func (o *Offer) Stamp(id string, now time.Time) {
	o.ID, o.CreatedAt, o.UpdatedAt = stamp(o.ID, o.CreatedAt, id, now)
}

// AppliedOffer registro derivado de la oferta que se aplicó a un pedido.
type AppliedOffer struct {
	OfferID          string
	OfferName        string
	TriggerProductID string
	TargetProductID  string
	UnitDiscount     decimal.Decimal
	Quantity         int
	DiscountAmount   decimal.Decimal // UnitDiscount * Quantity
}
