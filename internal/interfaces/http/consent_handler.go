package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/application/dto"
	"github.com/jhoicas/Consent-api/internal/domain"
	domainconsent "github.com/jhoicas/Consent-api/internal/domain/consent"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/pkg/logger"
	"github.com/jhoicas/Consent-api/pkg/phone"
)

// ConsentHandler maneja el registro, consulta y exportación de eventos de consentimiento.
type ConsentHandler struct {
	engine *appconsent.Engine
	log    *logger.Logger
	now    func() time.Time
}

// NewConsentHandler construye el handler.
func NewConsentHandler(engine *appconsent.Engine, log *logger.Logger) *ConsentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ConsentHandler{engine: engine, log: log, now: time.Now}
}

// submission datos comunes a los formularios de captura.
type submission struct {
	channel        string
	phoneNumber    string
	action         entity.ConsentAction
	customerID     *string
	accepted       *bool
	phonePrefilled bool
	verification   entity.VerificationResult
}

// validate replica las reglas del formulario: la casilla es obligatoria en opt-in y el
// teléfono debe tener 10 dígitos salvo que venga precargado del cliente.
func (s submission) validate() error {
	if !s.action.Valid() {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(s.channel) == "" {
		return domain.ErrInvalidInput
	}
	if s.action == entity.ActionOptIn && (s.accepted == nil || !*s.accepted) {
		return domain.ErrConsentNotAccepted
	}
	if !s.phonePrefilled {
		if err := phone.Validate(s.phoneNumber); err != nil {
			return domain.ErrInvalidPhone
		}
	} else if phone.Digits(s.phoneNumber) == "" {
		return domain.ErrInvalidPhone
	}
	if s.verification != "" && !s.verification.Valid() {
		return domain.ErrInvalidInput
	}
	return nil
}

func (h *ConsentHandler) record(c *fiber.Ctx, s submission) error {
	if err := s.validate(); err != nil {
		return respondError(c, h.log, err)
	}
	phoneNumber := s.phoneNumber
	if s.phonePrefilled {
		// el formulario conserva los primeros 10 dígitos del número precargado
		phoneNumber = phone.Truncate(phoneNumber)
	}
	in := appconsent.RecordInput{
		Channel:     s.channel,
		PhoneNumber: phoneNumber,
		Action:      s.action,
		CustomerID:  s.customerID,
	}
	if s.verification != "" {
		in.Verification = domainconsent.FixedVerification(s.verification)
	}
	res, err := h.engine.RecordConsentEvent(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordConsentResponse{Event: res.Event, Customer: res.Customer})
}

// Record godoc
// @Summary      Registrar evento de consentimiento
// @Tags         consent
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordConsentRequest  true  "Envío del formulario"
// @Success      201   {object}  dto.RecordConsentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consent/events [post]
func (h *ConsentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordConsentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.record(c, submission{
		channel:        in.Channel,
		phoneNumber:    in.PhoneNumber,
		action:         entity.ConsentAction(in.Action),
		customerID:     in.CustomerID,
		accepted:       in.Accepted,
		phonePrefilled: in.PhonePrefilled,
		verification:   entity.VerificationResult(in.VerificationResult),
	})
}

// RecordForFlow godoc
// @Summary      Registrar consentimiento en un punto de captura
// @Description  El canal es el del flujo; la acción por defecto es opt-in.
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        flow  path  string                  true  "Canal del flujo"
// @Param        body  body  dto.FlowConsentRequest  true  "Envío del formulario"
// @Success      201   {object}  dto.RecordConsentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/flows/{flow}/consent [post]
func (h *ConsentHandler) RecordForFlow(c *fiber.Ctx) error {
	flow, ok := GetFlow(c)
	if !ok {
		return respondError(c, h.log, domain.ErrUnknownFlow)
	}
	var in dto.FlowConsentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	action := entity.ConsentAction(in.Action)
	if action == "" {
		action = entity.ActionOptIn
	}
	return h.record(c, submission{
		channel:        flow.Channel,
		phoneNumber:    in.PhoneNumber,
		action:         action,
		customerID:     in.CustomerID,
		accepted:       in.Accepted,
		phonePrefilled: in.PhonePrefilled,
	})
}

// List godoc
// @Summary      Listar eventos de consentimiento
// @Tags         consent
// @Produce      json
// @Param        channel    query  string  false  "Canal"
// @Param        line_type  query  string  false  "Resultado de verificación"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD, UTC)"
// @Param        to         query  string  false  "Hasta inclusive (YYYY-MM-DD, UTC)"
// @Param        limit      query  int     false  "Límite"  default(100)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.ConsentEventListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/consent/events [get]
func (h *ConsentHandler) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return validation(c, "filtros inválidos: fechas YYYY-MM-DD, line_type y consent_state conocidos")
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "limit y offset deben ser numéricos")
	}
	page.DefaultPage()

	events, err := h.engine.GetConsentEvents(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	filtered := appconsent.FilterEvents(events, f)
	start, end := page.Window(len(filtered))
	return c.JSON(dto.ConsentEventListResponse{
		Items: filtered[start:end],
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	})
}

// GetByID godoc
// @Summary      Obtener evento por ID
// @Tags         consent
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  entity.ConsentEvent
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consent/events/{id} [get]
func (h *ConsentHandler) GetByID(c *fiber.Ctx) error {
	ev, err := h.engine.GetConsentEvent(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(ev)
}

// ExportCSV godoc
// @Summary      Descargar eventos en CSV
// @Tags         consent
// @Produce      text/csv
// @Success      200  {string}  string  "CSV con cabecera"
// @Router       /api/consent/events/export.csv [get]
func (h *ConsentHandler) ExportCSV(c *fiber.Ctx) error {
	out, err := h.engine.ExportConsentEventsAsCSV(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+appconsent.CSVFilename(h.now())+`"`)
	return c.SendString(out)
}

// ExportPDF godoc
// @Summary      Descargar reporte de auditoría en PDF
// @Tags         consent
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/consent/events/export.pdf [get]
func (h *ConsentHandler) ExportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.engine.ExportReportPDF(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Clear godoc
// @Summary      Borrar eventos y clientes
// @Tags         consent
// @Success      204
// @Router       /api/consent/data [delete]
func (h *ConsentHandler) Clear(c *fiber.Ctx) error {
	if err := h.engine.ClearAll(c.Context()); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Disclosure godoc
// @Summary      Texto legal de consentimiento
// @Tags         consent
// @Produce      json
// @Param        version  query  string  false  "Versión"  default(v1)
// @Success      200      {object}  dto.DisclosureResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/consent/disclosure [get]
func (h *ConsentHandler) Disclosure(c *fiber.Ctx) error {
	version := c.Query("version", entity.DisclosureTextVersion)
	text, ok := domainconsent.DisclosureText(version)
	if !ok {
		return respondError(c, h.log, domain.ErrNotFound)
	}
	return c.JSON(dto.DisclosureResponse{Version: version, Text: text})
}
