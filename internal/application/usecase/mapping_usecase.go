package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// NameMappingUseCase administra los mapeos de nombres de Salla a entidades internas.
type NameMappingUseCase struct {
	catalog[entity.NameMapping, *entity.NameMapping]
	mappings repository.NameMappingRepository
	products repository.ProductRepository
	shipping repository.ShippingMethodRepository
	payments repository.PaymentMethodRepository
}

// NewNameMappingUseCase construye el caso de uso.
func NewNameMappingUseCase(
	repo repository.NameMappingRepository,
	products repository.ProductRepository,
	shipping repository.ShippingMethodRepository,
	payments repository.PaymentMethodRepository,
) *NameMappingUseCase {
	return &NameMappingUseCase{
		catalog:  newCatalog[entity.NameMapping, *entity.NameMapping](repo),
		mappings: repo,
		products: products,
		shipping: shipping,
		payments: payments,
	}
}

// Create crea un mapeo. El par (kind, external_name) es único.
func (uc *NameMappingUseCase) Create(ctx context.Context, in dto.NameMappingRequest) (*dto.NameMappingResponse, error) {
	return uc.store(ctx, &entity.NameMapping{}, in)
}

// Update reemplaza un mapeo.
func (uc *NameMappingUseCase) Update(ctx context.Context, id string, in dto.NameMappingRequest) (*dto.NameMappingResponse, error) {
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.store(ctx, m, in)
}

// GetByID obtiene un mapeo.
func (uc *NameMappingUseCase) GetByID(ctx context.Context, id string) (*dto.NameMappingResponse, error) {
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toNameMappingResponse(m), nil
}

// List lista los mapeos; kind vacío = todos.
func (uc *NameMappingUseCase) List(ctx context.Context, kind string) ([]dto.NameMappingResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NameMappingResponse, 0, len(list))
	for _, m := range list {
		if kind != "" && string(m.Kind) != kind {
			continue
		}
		out = append(out, *toNameMappingResponse(m))
	}
	return out, nil
}

// Delete elimina un mapeo.
func (uc *NameMappingUseCase) Delete(ctx context.Context, id string) error {
	return uc.delete(ctx, id)
}

func (uc *NameMappingUseCase) store(ctx context.Context, m *entity.NameMapping, in dto.NameMappingRequest) (*dto.NameMappingResponse, error) {
	kind := entity.MappingKind(in.Kind)
	// El nombre externo se guarda tal cual: la búsqueda es exacta.
	if in.ExternalName == "" || strings.TrimSpace(in.InternalID) == "" {
		return nil, invalid("external_name e internal_id son obligatorios")
	}
	exists, err := uc.internalExists(ctx, kind, in.InternalID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, invalid("no existe %s con id %q", kind, in.InternalID)
	}
	current, err := uc.mappings.FindByExternalName(ctx, kind, in.ExternalName)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ID != m.ID {
		return nil, domain.ErrDuplicate
	}

	m.Kind = kind
	m.ExternalName = in.ExternalName
	m.InternalID = in.InternalID
	if err := uc.save(ctx, m); err != nil {
		return nil, err
	}
	return toNameMappingResponse(m), nil
}

func (uc *NameMappingUseCase) internalExists(ctx context.Context, kind entity.MappingKind, id string) (bool, error) {
	switch kind {
	case entity.MappingProduct:
		p, err := uc.products.GetByID(ctx, id)
		return p != nil, err
	case entity.MappingShipping:
		s, err := uc.shipping.GetByID(ctx, id)
		return s != nil, err
	case entity.MappingPayment:
		p, err := uc.payments.GetByID(ctx, id)
		return p != nil, err
	default:
		return false, invalid("tipo de mapeo desconocido %q", kind)
	}
}

func toNameMappingResponse(m *entity.NameMapping) *dto.NameMappingResponse {
	return &dto.NameMappingResponse{
		ID:           m.ID,
		Kind:         string(m.Kind),
		ExternalName: m.ExternalName,
		InternalID:   m.InternalID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
