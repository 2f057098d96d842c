package consent

import (
	"strconv"
	"strings"

	"github.com/jhoicas/Consent-api/internal/domain/entity"
)

// AnonymousSeed semilla de la IP simulada cuando el evento no tiene cliente.
const AnonymousSeed = "anon"

// DeriveConsentState calcula el estado del cliente a partir de la acción y la verificación:
// opt-out → revoked; opt-in con línea válida → valid; cualquier otro opt-in → pending_verification.
func DeriveConsentState(action entity.ConsentAction, verification entity.VerificationResult) entity.ConsentState {
	if action == entity.ActionOptOut {
		return entity.ConsentStateRevoked
	}
	if verification == entity.VerificationValid {
		return entity.ConsentStateValid
	}
	return entity.ConsentStatePendingVerification
}

// DeriveOptOutVerification reutiliza la verificación del último evento del cliente.
// Sin evento previo (o si ya no existe en la lista) asume valid.
func DeriveOptOutVerification(events []*entity.ConsentEvent, lastEventID *string) entity.VerificationResult {
	if lastEventID == nil || *lastEventID == "" {
		return entity.VerificationValid
	}
	for _, ev := range events {
		if ev.ID == *lastEventID {
			return ev.VerificationResult
		}
	}
	return entity.VerificationValid
}

// ResolveCustomer busca el cliente destino: primero por ID (si se indicó y existe),
// luego por teléfono normalizado. Devuelve (nil, -1) si no hay coincidencia.
func ResolveCustomer(customers []*entity.Customer, customerID *string, phoneNumber string) (*entity.Customer, int) {
	if customerID != nil && *customerID != "" {
		for i, c := range customers {
			if c.ID == *customerID {
				return c, i
			}
		}
	}
	for i, c := range customers {
		if c.PhoneNumber == phoneNumber {
			return c, i
		}
	}
	return nil, -1
}

// MockIPAddress genera una IP privada determinista a partir de una semilla (ID de cliente o "anon").
// Suma los puntos de código, toma los 3 primeros dígitos decimales (rellenando con ceros)
// y los reduce módulo 255.
func MockIPAddress(seed string) string {
	sum := 0
	for _, r := range seed {
		sum += int(r)
	}
	hash := strconv.Itoa(sum)
	if len(hash) < 3 {
		hash += strings.Repeat("0", 3-len(hash))
	}
	n, _ := strconv.Atoi(hash[:3])
	segment := n % 255
	return "192.168." + strconv.Itoa(segment) + "." + strconv.Itoa((segment*7)%255)
}
