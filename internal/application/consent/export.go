package consent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Consent-api/internal/domain"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
)

// CSVHeader columnas del export, en orden.
var CSVHeader = []string{
	"id", "customerId", "phoneNumber", "timestamp", "ip",
	"channel", "disclosureTextVersion", "verificationResult", "action",
}

// ExportConsentEventsAsCSV serializa todos los eventos en orden de almacenamiento.
// Cada valor va entre comillas dobles (comillas internas duplicadas); filas unidas con "\n".
func (e *Engine) ExportConsentEventsAsCSV(ctx context.Context) (string, error) {
	events, err := e.repo.LoadEvents(ctx)
	if err != nil {
		return "", fmt.Errorf("consent: exportar csv: %w", err)
	}
	return EventsCSV(events), nil
}

// EventsCSV arma el CSV sobre una lista ya cargada (o filtrada).
func EventsCSV(events []*entity.ConsentEvent) string {
	lines := make([]string, 0, len(events)+1)
	lines = append(lines, strings.Join(CSVHeader, ","))
	for _, ev := range events {
		lines = append(lines, csvRow(
			ev.ID,
			ev.CustomerIDOrEmpty(),
			ev.PhoneNumber,
			ev.Timestamp,
			ev.IP,
			ev.Channel,
			ev.DisclosureTextVersion,
			string(ev.VerificationResult),
			string(ev.Action),
		))
	}
	return strings.Join(lines, "\n")
}

func csvRow(values ...string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// CSVFilename nombre de descarga: consent-events-<ISO>.csv
func CSVFilename(at time.Time) string {
	return "consent-events-" + at.UTC().Format(TimestampLayout) + ".csv"
}

// ExportReportPDF genera el reporte de auditoría con el resumen actual.
// Retorna domain.ErrReportUnavailable si no se configuró un generador.
func (e *Engine) ExportReportPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	if e.reports == nil {
		return nil, "", domain.ErrReportUnavailable
	}
	summary, err := e.SummarizeCustomers(ctx)
	if err != nil {
		return nil, "", err
	}
	now := e.now()
	pdfBytes, err = e.reports.GenerateConsentReport(ctx, summary, now)
	if err != nil {
		return nil, "", fmt.Errorf("consent: generar pdf: %w", err)
	}
	return pdfBytes, "consent-report-" + now.UTC().Format("20060102-150405") + ".pdf", nil
}
