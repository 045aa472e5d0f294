package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El dueño debe ser uno de los socios configurados.
type ProductUseCase struct {
	catalog[entity.Product, *entity.Product]
	products repository.ProductRepository
	partners profit.Participants
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, partners profit.Participants) *ProductUseCase {
	return &ProductUseCase{
		catalog:  newCatalog[entity.Product, *entity.Product](repo),
		products: repo,
		partners: partners,
	}
}

// Create crea un producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p := &entity.Product{}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update reemplaza los datos de un producto. Los pedidos ya guardados conservan su copia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, func(p *entity.Product) dto.ProductResponse { return *toProductResponse(p) }), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.delete(ctx, id)
}

func (uc *ProductUseCase) apply(ctx context.Context, p *entity.Product, in dto.ProductRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("el nombre es obligatorio")
	}
	if in.Cost.IsNegative() || in.SellingPrice.IsNegative() {
		return invalid("costo y precio no pueden ser negativos")
	}
	owner := entity.Owner(in.Owner)
	if !isPartner(uc.partners, owner) {
		return invalid("dueño desconocido %q", in.Owner)
	}
	sku := strings.TrimSpace(in.SKU)
	if sku != "" {
		existing, err := uc.products.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != p.ID {
			return domain.ErrDuplicate
		}
	}
	p.Name = name
	p.SKU = sku
	p.Cost = in.Cost
	p.SellingPrice = in.SellingPrice
	p.Owner = owner
	return nil
}

func isPartner(partners profit.Participants, owner entity.Owner) bool {
	for _, o := range partners.Owners() {
		if o == owner {
			return true
		}
	}
	return false
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Cost:         p.Cost,
		SellingPrice: p.SellingPrice,
		Owner:        string(p.Owner),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
