package dto

import "github.com/jhoicas/Consent-api/internal/domain/entity"

// UpsertCustomerRequest body para POST /api/customers (chatbot).
type UpsertCustomerRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// EnsureCustomerRequest body para PUT /api/customers/:id (portal).
type EnsureCustomerRequest struct {
	DefaultPhone string `json:"default_phone"`
}

// ChangePhoneRequest body para PUT /api/customers/:id/phone.
type ChangePhoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// ToggleConsentRequest body para POST /api/customers/:id/toggle. Channel vacío equivale a portal-settings.
type ToggleConsentRequest struct {
	Channel string `json:"channel,omitempty"`
}

// CustomerResponse cliente en respuestas, con teléfono formateado y su último evento.
type CustomerResponse struct {
	*entity.Customer
	FormattedPhone string               `json:"formattedPhone"`
	OptedIn        bool                 `json:"optedIn"`
	LastEvent      *entity.ConsentEvent `json:"lastEvent"`
}

// CustomerListResponse listado filtrado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int                `json:"total"`
}
