package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/settings"
)

// SettingsHandler configuración de negocio (umbral de envío gratis y descuentos rápidos).
type SettingsHandler struct {
	svc        *settings.Service
	autoDetect bool
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(svc *settings.Service, autoDetect bool) *SettingsHandler {
	return &SettingsHandler{svc: svc, autoDetect: autoDetect}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.View(c.UserContext(), h.autoDetect)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar configuración (campos opcionales)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "umbral y/o descuentos rápidos"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.svc.Apply(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return h.Get(c)
}
