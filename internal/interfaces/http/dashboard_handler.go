package http

import (
	"github.com/gofiber/fiber/v2"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/application/dto"
	"github.com/jhoicas/Consent-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del dashboard de consentimientos.
type DashboardHandler struct {
	engine *appconsent.Engine
	log    *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(engine *appconsent.Engine, log *logger.Logger) *DashboardHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardHandler{engine: engine, log: log}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  Contadores por estado, canal y verificación, tasas y opciones del filtro de canal.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	s, err := h.engine.SummarizeCustomers(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}

	out := dto.DashboardSummaryDTO{
		TotalCustomers:     len(s.Customers),
		TotalEvents:        len(s.Events),
		ConsentStateCounts: make(map[string]int, len(s.ConsentStateCounts)),
		ChannelCounts:      s.ChannelCounts,
		VerificationCounts: make(map[string]int, len(s.VerificationCounts)),
		Rates: dto.RatesDTO{
			Valid:   s.Rates.Valid,
			Pending: s.Rates.Pending,
			Revoked: s.Rates.Revoked,
		},
		ChannelOptions: appconsent.ChannelOptions(s.Events),
	}
	for k, v := range s.ConsentStateCounts {
		out.ConsentStateCounts[string(k)] = v
	}
	for k, v := range s.VerificationCounts {
		out.VerificationCounts[string(k)] = v
	}
	if out.ChannelOptions == nil {
		out.ChannelOptions = []string{}
	}
	return c.JSON(out)
}
