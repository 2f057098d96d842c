package entity

// Customer agregado mutable con el estado de consentimiento vigente de una persona.
type Customer struct {
	ID                 string       `json:"id"`
	PhoneNumber        string       `json:"phoneNumber"`
	ConsentState       ConsentState `json:"consentState"`
	LastConsentEventID *string      `json:"lastConsentEventId"` // referencia, no propiedad
}

// HasLastEvent indica si el cliente apunta a un evento previo.
func (c *Customer) HasLastEvent() bool {
	return c.LastConsentEventID != nil && *c.LastConsentEventID != ""
}

// ResetConsent deja el cliente sin consentimiento (cambio de teléfono).
func (c *Customer) ResetConsent() {
	c.ConsentState = ConsentStateUnknown
	c.LastConsentEventID = nil
}

// StringPtr devuelve un puntero a s (útil para los campos anulables).
func StringPtr(s string) *string {
	return &s
}
