package entity

import "time"

// Record es el contrato mínimo de una entidad persistible por el Store genérico.
type Record interface {
	Key() string
	// Stamp asigna id (solo si está vacío) y marcas de tiempo antes de persistir.
	Stamp(id string, now time.Time)
}

// stamp devuelve (id, createdAt, updatedAt) para una entidad nueva o existente.
func stamp(curID string, created time.Time, newID string, now time.Time) (string, time.Time, time.Time) {
	if curID == "" {
		curID = newID
	}
	if created.IsZero() {
		created = now
	}
	return curID, created, now
}
