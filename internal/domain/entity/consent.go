package entity

// ConsentAction acción registrada en un evento de consentimiento.
type ConsentAction string

// Acciones de consentimiento.
const (
	ActionOptIn  ConsentAction = "opt-in"
	ActionOptOut ConsentAction = "opt-out"
)

// Valid indica si la acción es una de las conocidas.
func (a ConsentAction) Valid() bool {
	return a == ActionOptIn || a == ActionOptOut
}

// ConsentState estado de consentimiento vigente de un cliente.
type ConsentState string

// Estados de consentimiento expuestos a los operadores.
const (
	ConsentStateUnknown             ConsentState = "unknown"
	ConsentStatePendingVerification ConsentState = "pending_verification"
	ConsentStateValid               ConsentState = "valid"
	ConsentStateRevoked             ConsentState = "revoked"
)

// ConsentStates lista los estados en el orden en que se muestran en el dashboard.
var ConsentStates = []ConsentState{
	ConsentStateUnknown,
	ConsentStatePendingVerification,
	ConsentStateValid,
	ConsentStateRevoked,
}

// Valid indica si el estado es uno de los conocidos.
func (s ConsentState) Valid() bool {
	for _, st := range ConsentStates {
		if s == st {
			return true
		}
	}
	return false
}

// VerificationResult clasificación del tipo de línea telefónica.
type VerificationResult string

// Resultados de verificación de línea.
const (
	VerificationValid    VerificationResult = "valid"
	VerificationInvalid  VerificationResult = "invalid"
	VerificationVoIP     VerificationResult = "voip"
	VerificationLandline VerificationResult = "landline"
)

// VerificationResults lista los resultados posibles (orden fijo para reportes).
var VerificationResults = []VerificationResult{
	VerificationValid,
	VerificationInvalid,
	VerificationVoIP,
	VerificationLandline,
}

// Valid indica si el resultado es uno de los conocidos.
func (v VerificationResult) Valid() bool {
	for _, r := range VerificationResults {
		if v == r {
			return true
		}
	}
	return false
}
