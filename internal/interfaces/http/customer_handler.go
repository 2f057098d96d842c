package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/application/dto"
	"github.com/jhoicas/Consent-api/internal/domain"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/pkg/logger"
	"github.com/jhoicas/Consent-api/pkg/phone"
)

// portalChannel canal registrado por el interruptor del portal de preferencias.
const portalChannel = "portal-settings"

// CustomerHandler maneja las peticiones HTTP de clientes (dashboard, chatbot y portal).
type CustomerHandler struct {
	engine *appconsent.Engine
	log    *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(engine *appconsent.Engine, log *logger.Logger) *CustomerHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerHandler{engine: engine, log: log}
}

func toCustomerResponse(c *entity.Customer, last *entity.ConsentEvent) dto.CustomerResponse {
	return dto.CustomerResponse{
		Customer:       c,
		FormattedPhone: phone.Format(c.PhoneNumber),
		OptedIn:        appconsent.IsOptedIn(c),
		LastEvent:      last,
	}
}

// lastEvent busca el último evento del cliente; nil si no tiene o si el puntero quedó huérfano.
func (h *CustomerHandler) lastEvent(c *fiber.Ctx, customer *entity.Customer) (*entity.ConsentEvent, error) {
	if !customer.HasLastEvent() {
		return nil, nil
	}
	ev, err := h.engine.GetConsentEvent(c.Context(), *customer.LastConsentEventID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return ev, err
}

// List godoc
// @Summary      Listar clientes con su último evento
// @Tags         customers
// @Produce      json
// @Param        consent_state  query  string  false  "Estado de consentimiento"
// @Param        channel        query  string  false  "Canal del último evento"
// @Param        line_type      query  string  false  "Verificación del último evento"
// @Param        from           query  string  false  "Desde (YYYY-MM-DD, UTC)"
// @Param        to             query  string  false  "Hasta inclusive (YYYY-MM-DD, UTC)"
// @Success      200            {object}  dto.CustomerListResponse
// @Failure      400            {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return validation(c, "filtros inválidos: fechas YYYY-MM-DD, line_type y consent_state conocidos")
	}
	customers, err := h.engine.GetCustomers(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	events, err := h.engine.GetConsentEvents(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	filtered := appconsent.FilterCustomers(appconsent.EnrichCustomers(customers, events), f)
	items := make([]dto.CustomerResponse, 0, len(filtered))
	for _, ec := range filtered {
		items = append(items, toCustomerResponse(ec.Customer, ec.LastEvent))
	}
	return c.JSON(dto.CustomerListResponse{Items: items, Total: len(items)})
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.engine.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	last, err := h.lastEvent(c, customer)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toCustomerResponse(customer, last))
}

// Upsert godoc
// @Summary      Identificar o crear cliente por teléfono
// @Description  Lo usa el chatbot antes de ofrecer el opt-in.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertCustomerRequest  true  "Teléfono"
// @Success      200   {object}  dto.CustomerResponse
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := phone.Validate(in.PhoneNumber); err != nil {
		return respondError(c, h.log, domain.ErrInvalidPhone)
	}
	customer, created, err := h.engine.UpsertCustomerByPhone(c.Context(), in.PhoneNumber)
	if err != nil {
		return respondError(c, h.log, err)
	}
	last, err := h.lastEvent(c, customer)
	if err != nil {
		return respondError(c, h.log, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(toCustomerResponse(customer, last))
}

// Ensure godoc
// @Summary      Obtener o crear el registro del portal
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true   "ID del cliente"
// @Param        body  body  dto.EnsureCustomerRequest  false  "Teléfono por defecto"
// @Success      200   {object}  dto.CustomerResponse
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Ensure(c *fiber.Ctx) error {
	var in dto.EnsureCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	if in.DefaultPhone == "" && id == appconsent.PortalCustomerID {
		in.DefaultPhone = appconsent.PortalDefaultPhone
	}
	if err := phone.Validate(in.DefaultPhone); err != nil {
		return respondError(c, h.log, domain.ErrInvalidPhone)
	}
	customer, created, err := h.engine.EnsureCustomer(c.Context(), id, in.DefaultPhone)
	if err != nil {
		return respondError(c, h.log, err)
	}
	last, err := h.lastEvent(c, customer)
	if err != nil {
		return respondError(c, h.log, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(toCustomerResponse(customer, last))
}

// ChangePhone godoc
// @Summary      Cambiar teléfono y reiniciar consentimiento
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del cliente"
// @Param        body  body  dto.ChangePhoneRequest  true  "Nuevo teléfono"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/phone [put]
func (h *CustomerHandler) ChangePhone(c *fiber.Ctx) error {
	var in dto.ChangePhoneRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.engine.ChangeCustomerPhone(c.Context(), c.Params("id"), in.PhoneNumber)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toCustomerResponse(customer, nil))
}

// Toggle godoc
// @Summary      Interruptor de consentimiento del portal
// @Description  Con opt-in vigente registra el opt-out; en otro caso responde 409 CONSENT_REQUIRED.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true   "ID del cliente"
// @Param        body  body  dto.ToggleConsentRequest  false  "Canal"
// @Success      200   {object}  dto.RecordConsentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/toggle [post]
func (h *CustomerHandler) Toggle(c *fiber.Ctx) error {
	var in dto.ToggleConsentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if in.Channel == "" {
		in.Channel = portalChannel
	}
	res, err := h.engine.RevokeFromPortal(c.Context(), c.Params("id"), in.Channel)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.RecordConsentResponse{Event: res.Event, Customer: res.Customer})
}
