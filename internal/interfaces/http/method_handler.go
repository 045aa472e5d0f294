package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/usecase"
)

// MethodHandler métodos de envío y de pago.
type MethodHandler struct {
	shipping *usecase.ShippingMethodUseCase
	payment  *usecase.PaymentMethodUseCase
}

// NewMethodHandler construye el handler.
func NewMethodHandler(shipping *usecase.ShippingMethodUseCase, payment *usecase.PaymentMethodUseCase) *MethodHandler {
	return &MethodHandler{shipping: shipping, payment: payment}
}

// CreateShipping godoc
// @Summary      Crear método de envío
// @Tags         shipping-methods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShippingMethodRequest  true  "nombre y costo"
// @Success      201   {object}  dto.ShippingMethodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shipping-methods [post]
func (h *MethodHandler) CreateShipping(c *fiber.Ctx) error {
	return createWith(c, h.shipping.Create)
}

// ListShipping godoc
// @Summary      Listar métodos de envío
// @Tags         shipping-methods
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ShippingMethodResponse]
// @Router       /api/shipping-methods [get]
func (h *MethodHandler) ListShipping(c *fiber.Ctx) error {
	out, err := h.shipping.List(c.UserContext())
	return listWith(c, out, err)
}

// GetShipping godoc
// @Summary      Obtener método de envío
// @Tags         shipping-methods
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ShippingMethodResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipping-methods/{id} [get]
func (h *MethodHandler) GetShipping(c *fiber.Ctx) error {
	return getWith(c, h.shipping.GetByID)
}

// UpdateShipping godoc
// @Summary      Actualizar método de envío
// @Tags         shipping-methods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.ShippingMethodRequest  true  "nombre y costo"
// @Success      200   {object}  dto.ShippingMethodResponse
// @Router       /api/shipping-methods/{id} [put]
func (h *MethodHandler) UpdateShipping(c *fiber.Ctx) error {
	return updateWith(c, h.shipping.Update)
}

// DeleteShipping godoc
// @Summary      Eliminar método de envío
// @Tags         shipping-methods
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/shipping-methods/{id} [delete]
func (h *MethodHandler) DeleteShipping(c *fiber.Ctx) error {
	return deleteWith(c, h.shipping.Delete)
}

// CreatePayment godoc
// @Summary      Crear método de pago
// @Tags         payment-methods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentMethodRequest  true  "comisiones y recargo"
// @Success      201   {object}  dto.PaymentMethodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payment-methods [post]
func (h *MethodHandler) CreatePayment(c *fiber.Ctx) error {
	return createWith(c, h.payment.Create)
}

// ListPayment godoc
// @Summary      Listar métodos de pago (por display_order)
// @Tags         payment-methods
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.PaymentMethodResponse]
// @Router       /api/payment-methods [get]
func (h *MethodHandler) ListPayment(c *fiber.Ctx) error {
	out, err := h.payment.List(c.UserContext())
	return listWith(c, out, err)
}

// GetPayment godoc
// @Summary      Obtener método de pago
// @Tags         payment-methods
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PaymentMethodResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-methods/{id} [get]
func (h *MethodHandler) GetPayment(c *fiber.Ctx) error {
	return getWith(c, h.payment.GetByID)
}

// UpdatePayment godoc
// @Summary      Actualizar método de pago
// @Tags         payment-methods
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.PaymentMethodRequest  true  "comisiones y recargo"
// @Success      200   {object}  dto.PaymentMethodResponse
// @Router       /api/payment-methods/{id} [put]
func (h *MethodHandler) UpdatePayment(c *fiber.Ctx) error {
	return updateWith(c, h.payment.Update)
}

// DeletePayment godoc
// @Summary      Eliminar método de pago
// @Tags         payment-methods
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/payment-methods/{id} [delete]
func (h *MethodHandler) DeletePayment(c *fiber.Ctx) error {
	return deleteWith(c, h.payment.Delete)
}
