package repository

import (
	"context"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
)

// NameMappingRepository mapeos nombre externo → entidad interna.
type NameMappingRepository interface {
	Store[entity.NameMapping]
	// FindByExternalName coincidencia exacta por tipo y nombre. (nil, nil) si no hay mapeo.
	FindByExternalName(ctx context.Context, kind entity.MappingKind, name string) (*entity.NameMapping, error)
}
