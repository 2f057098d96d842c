package entity

// DisclosureTextVersion versión del texto legal mostrado al capturar el consentimiento.
const DisclosureTextVersion = "v1"

// ConsentEvent registro inmutable de una acción de consentimiento (opt-in / opt-out).
// Las etiquetas JSON definen el formato del documento persistido en el store.
type ConsentEvent struct {
	ID                    string             `json:"id"`
	CustomerID            *string            `json:"customerId"` // nil si no se resolvió cliente
	PhoneNumber           string             `json:"phoneNumber"` // últimos 10 dígitos, sin formato
	Timestamp             string             `json:"timestamp"`   // ISO-8601 UTC
	IP                    string             `json:"ip"`
	Channel               string             `json:"channel"`
	DisclosureTextVersion string             `json:"disclosureTextVersion"`
	VerificationResult    VerificationResult `json:"verificationResult"`
	Action                ConsentAction      `json:"action"`
}

// CustomerIDOrEmpty devuelve el ID del cliente o "" si el evento es anónimo.
func (e *ConsentEvent) CustomerIDOrEmpty() string {
	if e.CustomerID == nil {
		return ""
	}
	return *e.CustomerID
}
