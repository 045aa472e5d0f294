package repository

import (
	"context"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Store[entity.Product]
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
}
