package dto

import "github.com/jhoicas/Consent-api/internal/domain/entity"

// RecordConsentRequest body para POST /api/consent/events.
// Accepted es la casilla del formulario; PhonePrefilled indica que el teléfono viene del
// cliente en archivo y omite la validación de longitud.
type RecordConsentRequest struct {
	Channel            string  `json:"channel"`
	PhoneNumber        string  `json:"phone_number"`
	Action             string  `json:"action"`
	CustomerID         *string `json:"customer_id,omitempty"`
	Accepted           *bool   `json:"accepted,omitempty"`
	PhonePrefilled     bool    `json:"phone_prefilled,omitempty"`
	VerificationResult string  `json:"verification_result,omitempty"` // opcional; sustituye al oráculo en opt-in
}

// FlowConsentRequest body para POST /api/flows/:flow/consent. Action vacía equivale a opt-in.
type FlowConsentRequest struct {
	PhoneNumber    string  `json:"phone_number"`
	Action         string  `json:"action,omitempty"`
	CustomerID     *string `json:"customer_id,omitempty"`
	Accepted       *bool   `json:"accepted,omitempty"`
	PhonePrefilled bool    `json:"phone_prefilled,omitempty"`
}

// RecordConsentResponse evento creado y cliente afectado (null si el opt-out no corresponde a nadie).
type RecordConsentResponse struct {
	Event    *entity.ConsentEvent `json:"event"`
	Customer *entity.Customer     `json:"customer"`
}

// ConsentEventListResponse listado paginado de eventos.
type ConsentEventListResponse struct {
	Items []*entity.ConsentEvent `json:"items"`
	Page  PageResponse           `json:"page"`
}

// FlowResponse punto de captura del catálogo.
type FlowResponse struct {
	Channel string `json:"channel"`
	Label   string `json:"label"`
}

// DisclosureResponse texto legal mostrado junto a la casilla de consentimiento.
type DisclosureResponse struct {
	Version string `json:"version"`
	Text    string `json:"text"`
}
