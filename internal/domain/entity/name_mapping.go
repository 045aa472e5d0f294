package entity

import "time"

// MappingKind tipo de entidad interna a la que apunta un mapeo.
type MappingKind string

const (
	MappingProduct  MappingKind = "product"
	MappingShipping MappingKind = "shipping"
	MappingPayment  MappingKind = "payment"
)

// NameMapping traduce un nombre de la plataforma externa (Salla) a una entidad interna.
// La coincidencia es exacta; no hay búsqueda aproximada.
type NameMapping struct {
	ID           string
	Kind         MappingKind
	ExternalName string
	InternalID   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m *NameMapping) Key() string { return m.ID }

func (m *NameMapping) Stamp(id string, now time.Time) {
	m.ID, m.CreatedAt, m.UpdatedAt = stamp(m.ID, m.CreatedAt, id, now)
}
