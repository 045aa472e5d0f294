package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Al usarse en un pedido se copia
// completo dentro de la línea (snapshot), nunca se referencia en vivo.
type Product struct {
	ID           string
	Name         string
	SKU          string
	Cost         decimal.Decimal // costo unitario, no negativo
	SellingPrice decimal.Decimal // precio de venta unitario, no negativo
	Owner        Owner
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Product) Key() string { return p.ID }

func (p *Product) Stamp(id string, now time.Time) {
	p.ID, p.CreatedAt, p.UpdatedAt = stamp(p.ID, p.CreatedAt, id, now)
}
