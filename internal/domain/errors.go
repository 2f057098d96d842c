package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidPhone       = errors.New("ingrese un número de teléfono válido de 10 dígitos")
	ErrConsentNotAccepted = errors.New("debe confirmar el consentimiento para continuar")
	ErrUnknownFlow        = errors.New("flujo de captura desconocido")
	ErrConsentRequired    = errors.New("el opt-in requiere el formulario de consentimiento")
	ErrStoreUnavailable   = errors.New("almacenamiento no disponible")
	ErrReportUnavailable  = errors.New("generador de reportes no configurado")
)
