package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/report"
	"github.com/jhoicas/Ganancias-api/internal/application/usecase"
	"github.com/jhoicas/Ganancias-api/internal/domain"
)

// rangeParser interpreta ?from=&to= en la zona de la tienda (lo implementa *report.UseCase).
type rangeParser interface {
	ParseRange(from, to string) (report.Range, error)
}

// optionalRange sin from ni to devuelve (nil, nil): listado completo.
func optionalRange(c *fiber.Ctx, p rangeParser) (from, to *time.Time, err error) {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if q.From == "" && q.To == "" {
		return nil, nil, nil
	}
	r, err := p.ParseRange(q.From, q.To)
	if err != nil {
		return nil, nil, err
	}
	return &r.From, &r.To, nil
}

// ── Ofertas ───────────────────────────────────────────────────────────────────

// OfferHandler ofertas automáticas.
type OfferHandler struct {
	uc *usecase.OfferUseCase
}

// NewOfferHandler construye el handler.
func NewOfferHandler(uc *usecase.OfferUseCase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear oferta
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OfferRequest  true  "producto disparador, producto objetivo y descuento"
// @Success      201   {object}  dto.OfferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/offers [post]
func (h *OfferHandler) Create(c *fiber.Ctx) error { return createWith(c, h.uc.Create) }

// List godoc
// @Summary      Listar ofertas
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.OfferResponse]
// @Router       /api/offers [get]
func (h *OfferHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	return listWith(c, out, err)
}

// GetByID godoc
// @Summary      Obtener oferta
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/offers/{id} [get]
func (h *OfferHandler) GetByID(c *fiber.Ctx) error { return getWith(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar oferta
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.OfferRequest  true  "oferta"
// @Success      200   {object}  dto.OfferResponse
// @Router       /api/offers/{id} [put]
func (h *OfferHandler) Update(c *fiber.Ctx) error { return updateWith(c, h.uc.Update) }

// Delete godoc
// @Summary      Eliminar oferta
// @Tags         offers
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/offers/{id} [delete]
func (h *OfferHandler) Delete(c *fiber.Ctx) error { return deleteWith(c, h.uc.Delete) }

// ── Gastos ────────────────────────────────────────────────────────────────────

// ExpenseHandler gastos del negocio.
type ExpenseHandler struct {
	uc     *usecase.ExpenseUseCase
	ranges rangeParser
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *usecase.ExpenseUseCase, ranges rangeParser) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, ranges: ranges}
}

// Create godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error { return createWith(c, h.uc.Create) }

// List godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.ListResponse[dto.ExpenseResponse]
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	from, to, err := optionalRange(c, h.ranges)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), from, to)
	return listWith(c, out, err)
}

// GetByID godoc
// @Summary      Obtener gasto
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error { return getWith(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.ExpenseRequest  true  "gasto"
// @Success      200   {object}  dto.ExpenseResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error { return updateWith(c, h.uc.Update) }

// Delete godoc
// @Summary      Eliminar gasto
// @Tags         expenses
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error { return deleteWith(c, h.uc.Delete) }

// ── Mapeos de nombres ─────────────────────────────────────────────────────────

// MappingHandler mapeos nombre Salla → entidad interna.
type MappingHandler struct {
	uc *usecase.NameMappingUseCase
}

// NewMappingHandler construye el handler.
func NewMappingHandler(uc *usecase.NameMappingUseCase) *MappingHandler {
	return &MappingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear mapeo
// @Tags         mappings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NameMappingRequest  true  "tipo, nombre externo e id interno"
// @Success      201   {object}  dto.NameMappingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/mappings [post]
func (h *MappingHandler) Create(c *fiber.Ctx) error { return createWith(c, h.uc.Create) }

// List godoc
// @Summary      Listar mapeos
// @Tags         mappings
// @Security     Bearer
// @Produce      json
// @Param        kind  query  string  false  "product | shipping | payment"
// @Success      200   {object}  dto.ListResponse[dto.NameMappingResponse]
// @Router       /api/mappings [get]
func (h *MappingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("kind"))
	return listWith(c, out, err)
}

// GetByID godoc
// @Summary      Obtener mapeo
// @Tags         mappings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.NameMappingResponse
// @Router       /api/mappings/{id} [get]
func (h *MappingHandler) GetByID(c *fiber.Ctx) error { return getWith(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar mapeo
// @Tags         mappings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.NameMappingRequest  true  "mapeo"
// @Success      200   {object}  dto.NameMappingResponse
// @Router       /api/mappings/{id} [put]
func (h *MappingHandler) Update(c *fiber.Ctx) error { return updateWith(c, h.uc.Update) }

// Delete godoc
// @Summary      Eliminar mapeo
// @Tags         mappings
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/mappings/{id} [delete]
func (h *MappingHandler) Delete(c *fiber.Ctx) error { return deleteWith(c, h.uc.Delete) }
