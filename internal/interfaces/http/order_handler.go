package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/orders"
)

// OrderHandler pedidos: vista previa del cálculo y CRUD.
type OrderHandler struct {
	uc     *orders.UseCase
	ranges rangeParser
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase, ranges rangeParser) *OrderHandler {
	return &OrderHandler{uc: uc, ranges: ranges}
}

// Calculate godoc
// @Summary      Calcular pedido sin guardar
// @Description  Subtotal, descuento, envío gratis, comisiones, total del cliente y reparto entre socios.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "líneas, métodos y descuento"
// @Success      200   {object}  dto.OrderCalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/calculate [post]
func (h *OrderHandler) Calculate(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Calculate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error { return createWith(c, h.uc.Create) }

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	from, to, err := optionalRange(c, h.ranges)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), from, to)
	return listWith(c, out, err)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error { return getWith(c, h.uc.GetByID) }

// Update godoc
// @Summary      Actualizar pedido (recalcula)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.OrderRequest  true  "pedido"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error { return updateWith(c, h.uc.Update) }

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error { return deleteWith(c, h.uc.Delete) }
