// Package phone utilidades para números telefónicos de 10 dígitos (NANP, sin código de país).
package phone

import (
	"fmt"
	"strings"
)

// NationalLength longitud del número nacional significativo.
const NationalLength = 10

// Digits extrae solo los dígitos ASCII de s, en orden.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize devuelve los últimos 10 dígitos de s. Con menos dígitos devuelve los que haya;
// nunca falla.
func Normalize(s string) string {
	d := Digits(s)
	if len(d) > NationalLength {
		return d[len(d)-NationalLength:]
	}
	return d
}

// Truncate devuelve los primeros 10 dígitos de s (comportamiento del campo de entrada).
func Truncate(s string) string {
	d := Digits(s)
	if len(d) > NationalLength {
		return d[:NationalLength]
	}
	return d
}

// Validate verifica que s tenga exactamente 10 dígitos tras quitar el formato.
func Validate(s string) error {
	if n := len(Digits(s)); n != NationalLength {
		return fmt.Errorf("phone: se esperaban %d dígitos, se recibieron %d", NationalLength, n)
	}
	return nil
}

// Format aplica el formato progresivo de pantalla: "555", "(555) 123", "(555) 123-4567".
// Solo considera los primeros 10 dígitos.
func Format(raw string) string {
	d := Truncate(raw)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return fmt.Sprintf("(%s) %s", d[:3], d[3:])
	default:
		return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
	}
}
