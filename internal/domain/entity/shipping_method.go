package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingMethod método de envío. Cost es lo que paga el cliente cuando el envío no es gratis.
type ShippingMethod struct {
	ID        string
	Name      string
	Cost      decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *ShippingMethod) Key() string { return s.ID }

func (s *ShippingMethod) Stamp(id string, now time.Time) {
	s.ID, s.CreatedAt, s.UpdatedAt = stamp(s.ID, s.CreatedAt, id, now)
}
