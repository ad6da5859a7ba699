package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler descargas: Excel por entidad y albarán PDF por bulto.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Workbook godoc
// @Summary      Exportar a Excel
// @Tags         export
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        entity  path  string  true  "products | packages | line_items | entries | exits | movements"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/{entity} [get]
func (h *ExportHandler) Workbook(c *fiber.Ctx) error {
	entity := c.Params("entity")
	var buf bytes.Buffer
	if err := h.uc.Workbook(c.UserContext(), entity, &buf); err != nil {
		return fail(c, "export_"+entity, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename(entity, time.Now())))
	return c.Send(buf.Bytes())
}

// Manifest godoc
// @Summary      Albarán PDF del bulto
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del bulto"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id}/manifest [get]
func (h *ExportHandler) Manifest(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "bulto")
	if !ok {
		return err
	}
	pdf, err := h.uc.Manifest(c.UserContext(), id)
	if err != nil {
		return fail(c, "package_manifest", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="bulto_%s.pdf"`, id))
	return c.Send(pdf)
}
