package repository

import (
	"context"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
)

// Store puerto genérico de persistencia para entidades de catálogo (DIP).
// GetByID devuelve (nil, nil) si no existe.
type Store[T any] interface {
	GetAll(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Upsert(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) error
}

// Puertos de catálogo sin consultas propias.
type (
	ShippingMethodRepository = Store[entity.ShippingMethod]
	PaymentMethodRepository  = Store[entity.PaymentMethod]
	OfferRepository          = Store[entity.Offer]
)
