// Package consent contiene las reglas puras de consentimiento: verificación simulada de
// línea, derivación de estado y resolución de clientes. No accede a almacenamiento.
package consent

import (
	"context"

	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/pkg/phone"
)

// VerificationProvider clasifica el tipo de línea de un número normalizado.
type VerificationProvider interface {
	Verify(ctx context.Context, phoneNumber string) (entity.VerificationResult, error)
}

// LookupVerification simula una consulta de tipo de línea usando solo el último dígito:
// sin dígitos → invalid, 0 → landline, 2 → voip, 4 → invalid, resto → valid.
func LookupVerification(phoneNumber string) entity.VerificationResult {
	digits := phone.Digits(phoneNumber)
	if digits == "" {
		return entity.VerificationInvalid
	}
	switch digits[len(digits)-1] {
	case '0':
		return entity.VerificationLandline
	case '2':
		return entity.VerificationVoIP
	case '4':
		return entity.VerificationInvalid
	default:
		return entity.VerificationValid
	}
}

// MockOracle implementación determinista de VerificationProvider (sin red).
type MockOracle struct{}

// NewMockOracle construye el oráculo simulado.
func NewMockOracle() *MockOracle { return &MockOracle{} }

// Verify aplica LookupVerification.
func (MockOracle) Verify(_ context.Context, phoneNumber string) (entity.VerificationResult, error) {
	return LookupVerification(phoneNumber), nil
}

// FixedVerification proveedor que devuelve siempre el resultado indicado por el llamador.
type FixedVerification entity.VerificationResult

// Verify devuelve el valor fijo.
func (f FixedVerification) Verify(context.Context, string) (entity.VerificationResult, error) {
	return entity.VerificationResult(f), nil
}
