package http

import (
	"github.com/gofiber/fiber/v2"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/application/dto"
	"github.com/jhoicas/Consent-api/internal/domain"
)

// LocalFlow key de c.Locals con el flujo resuelto por RequireFlow.
const LocalFlow = "flow"

// flowLookup es el contrato mínimo que necesita el middleware. Lo implementa *consent.FlowCatalog.
type flowLookup interface {
	Lookup(channel string) (appconsent.Flow, bool)
}

// RequireFlow devuelve un middleware Fiber que resuelve el parámetro :flow contra el catálogo.
//
// Comportamiento:
//   - 404 Not Found → el flujo no existe en el catálogo.
//   - Si existe, lo deja en c.Locals(LocalFlow) y continúa.
func RequireFlow(catalog flowLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("flow")
		flow, ok := catalog.Lookup(name)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_FLOW",
				Message: domain.ErrUnknownFlow.Error() + ": '" + name + "'",
			})
		}
		c.Locals(LocalFlow, flow)
		return c.Next()
	}
}

// GetFlow obtiene el flujo desde Locals (tras RequireFlow).
func GetFlow(c *fiber.Ctx) (appconsent.Flow, bool) {
	f, ok := c.Locals(LocalFlow).(appconsent.Flow)
	return f, ok
}
