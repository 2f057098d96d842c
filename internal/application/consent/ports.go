package consent

import (
	"context"
	"time"
)

// ConsentReportGenerator genera el reporte de auditoría de consentimientos (PDF).
// La implementación vive en infraestructura (Maroto); la aplicación solo conoce este contrato.
type ConsentReportGenerator interface {
	GenerateConsentReport(ctx context.Context, summary *Summary, generatedAt time.Time) ([]byte, error)
}
