package http

import (
	"github.com/gofiber/fiber/v2"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/application/dto"
)

// FlowHandler expone el catálogo de puntos de captura.
type FlowHandler struct {
	catalog *appconsent.FlowCatalog
}

// NewFlowHandler construye el handler.
func NewFlowHandler(catalog *appconsent.FlowCatalog) *FlowHandler {
	return &FlowHandler{catalog: catalog}
}

// List godoc
// @Summary      Listar puntos de captura
// @Tags         flows
// @Produce      json
// @Success      200  {array}  dto.FlowResponse
// @Router       /api/flows [get]
func (h *FlowHandler) List(c *fiber.Ctx) error {
	flows := h.catalog.List()
	out := make([]dto.FlowResponse, 0, len(flows))
	for _, f := range flows {
		out = append(out, dto.FlowResponse{Channel: f.Channel, Label: f.Label})
	}
	return c.JSON(out)
}
