package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod método de pago (pasarela, contra entrega, transferencia...).
//
// FeePercentage, FeeFixed y TaxRate definen la comisión que paga el comercio a la pasarela.
// CustomerFee es un recargo que se suma al total del cliente (ej. comisión contra entrega).
type PaymentMethod struct {
	ID            string
	Name          string
	FeePercentage decimal.Decimal // 0-100
	FeeFixed      decimal.Decimal
	TaxRate       decimal.Decimal // 0-100, se aplica sobre la comisión
	CustomerFee   decimal.Decimal
	DisplayOrder  int
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *PaymentMethod) Key() string { return p.ID }

func (p *PaymentMethod) Stamp(id string, now time.Time) {
	p.ID, p.CreatedAt, p.UpdatedAt = stamp(p.ID, p.CreatedAt, id, now)
}
