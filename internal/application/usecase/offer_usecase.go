package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// OfferUseCase CRUD de ofertas automáticas (compra X, descuento en Y).
type OfferUseCase struct {
	catalog[entity.Offer, *entity.Offer]
	products repository.ProductRepository
}

// NewOfferUseCase construye el caso de uso.
func NewOfferUseCase(repo repository.OfferRepository, products repository.ProductRepository) *OfferUseCase {
	return &OfferUseCase{catalog: newCatalog[entity.Offer, *entity.Offer](repo), products: products}
}

// Create crea una oferta.
func (uc *OfferUseCase) Create(ctx context.Context, in dto.OfferRequest) (*dto.OfferResponse, error) {
	return uc.store(ctx, &entity.Offer{}, in)
}

// Update reemplaza una oferta.
func (uc *OfferUseCase) Update(ctx context.Context, id string, in dto.OfferRequest) (*dto.OfferResponse, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.store(ctx, o, in)
}

// GetByID obtiene una oferta.
func (uc *OfferUseCase) GetByID(ctx context.Context, id string) (*dto.OfferResponse, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOfferResponse(o), nil
}

// List lista las ofertas.
func (uc *OfferUseCase) List(ctx context.Context) ([]dto.OfferResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, func(o *entity.Offer) dto.OfferResponse { return *toOfferResponse(o) }), nil
}

// Delete elimina una oferta.
func (uc *OfferUseCase) Delete(ctx context.Context, id string) error {
	return uc.delete(ctx, id)
}

func (uc *OfferUseCase) store(ctx context.Context, o *entity.Offer, in dto.OfferRequest) (*dto.OfferResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("el nombre es obligatorio")
	}
	d := entity.Discount{Type: entity.DiscountType(in.DiscountType), Value: in.DiscountValue}
	if err := d.Validate(); err != nil {
		return nil, invalid("%v", err)
	}
	for _, id := range []string{in.TriggerProductID, in.TargetProductID} {
		p, err := uc.products.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, invalid("producto %q no existe", id)
		}
	}
	start, err := parseDay(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDay(in.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, invalid("end_date anterior a start_date")
	}

	o.Name = name
	o.TriggerProductID = in.TriggerProductID
	o.TargetProductID = in.TargetProductID
	o.DiscountType = d.Type
	o.DiscountValue = d.Value
	o.Active = boolOr(in.Active, true)
	o.StartDate = start
	o.EndDate = end
	if err := uc.save(ctx, o); err != nil {
		return nil, err
	}
	return toOfferResponse(o), nil
}

func toOfferResponse(o *entity.Offer) *dto.OfferResponse {
	return &dto.OfferResponse{
		ID:               o.ID,
		Name:             o.Name,
		TriggerProductID: o.TriggerProductID,
		TargetProductID:  o.TargetProductID,
		DiscountType:     string(o.DiscountType),
		DiscountValue:    o.DiscountValue,
		Active:           o.Active,
		StartDate:        formatDay(o.StartDate),
		EndDate:          formatDay(o.EndDate),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
