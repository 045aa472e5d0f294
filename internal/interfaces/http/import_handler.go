package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/salla"
)

// ImportHandler importación de pedidos desde el CSV de Salla.
type ImportHandler struct {
	uc *salla.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *salla.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir CSV de Salla
// @Description  Lee el archivo y deja la sesión en vista previa. Con session_id reutiliza una sesión reiniciada.
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "CSV exportado de Salla"
// @Param        session_id  formData  string  false  "sesión existente en estado upload"
// @Success      201  {object}  dto.ImportSessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/imports/salla [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo file es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Upload(c.UserContext(), c.FormValue("session_id"), fh.Filename, string(content))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado de la sesión de importación
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ImportSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/imports/salla/{id} [get]
func (h *ImportHandler) Get(c *fiber.Ctx) error { return getWith(c, h.uc.Get) }

// Refresh godoc
// @Summary      Reconciliar de nuevo tras crear mapeos
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ImportSessionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/imports/salla/{id}/refresh [post]
func (h *ImportHandler) Refresh(c *fiber.Ctx) error { return getWith(c, h.uc.Refresh) }

// Confirm godoc
// @Summary      Confirmar importación
// @Description  Importa las filas válidas en una transacción. Con nombres sin mapear responde 409 IMPORT_BLOCKED.
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ImportSessionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/imports/salla/{id}/confirm [post]
func (h *ImportHandler) Confirm(c *fiber.Ctx) error { return getWith(c, h.uc.Confirm) }

// Reset godoc
// @Summary      Reiniciar sesión para subir otro archivo
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ImportSessionResponse
// @Router       /api/imports/salla/{id}/reset [post]
func (h *ImportHandler) Reset(c *fiber.Ctx) error { return getWith(c, h.uc.Reset) }
