package http

import (
	"github.com/gofiber/fiber/v2"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine *appconsent.Engine
	Flows  *appconsent.FlowCatalog
	Log    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Flows == nil {
		deps.Flows = appconsent.NewFlowCatalog()
	}
	api := app.Group("/api")

	consentHandler := NewConsentHandler(deps.Engine, deps.Log)
	customerHandler := NewCustomerHandler(deps.Engine, deps.Log)
	dashboardHandler := NewDashboardHandler(deps.Engine, deps.Log)
	flowHandler := NewFlowHandler(deps.Flows)

	// Flujos de captura
	flows := api.Group("/flows")
	flows.Get("/", flowHandler.List)
	flows.Post("/:flow/consent", RequireFlow(deps.Flows), consentHandler.RecordForFlow)

	// Eventos de consentimiento (las rutas fijas antes de /:id)
	consent := api.Group("/consent")
	consent.Get("/disclosure", consentHandler.Disclosure)
	consent.Delete("/data", consentHandler.Clear)
	consent.Post("/events", consentHandler.Record)
	consent.Get("/events", consentHandler.List)
	consent.Get("/events/export.csv", consentHandler.ExportCSV)
	consent.Get("/events/export.pdf", consentHandler.ExportPDF)
	consent.Get("/events/:id", consentHandler.GetByID)

	// Clientes
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Upsert)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Ensure)
	customers.Put("/:id/phone", customerHandler.ChangePhone)
	customers.Post("/:id/toggle", customerHandler.Toggle)

	// Dashboard
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
