package consent

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/jhoicas/Consent-api/internal/domain"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/pkg/phone"
)

// ParseEventsCSV lee un CSV con el formato de ExportConsentEventsAsCSV.
// La cabecera debe coincidir con CSVHeader; customerId vacío queda en nil.
// El teléfono se normaliza a los últimos 10 dígitos y la versión del texto legal
// debe ser la vigente.
func ParseEventsCSV(r io.Reader) ([]*entity.ConsentEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("consent: csv vacío: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("consent: leer cabecera: %w", err)
	}
	if !slices.Equal(header, CSVHeader) {
		return nil, fmt.Errorf("consent: cabecera inesperada %v: %w", header, domain.ErrInvalidInput)
	}

	var events []*entity.ConsentEvent
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("consent: línea %d: %w", line, err)
		}
		ev := &entity.ConsentEvent{
			ID:                    rec[0],
			PhoneNumber:           phone.Normalize(rec[2]),
			Timestamp:             rec[3],
			IP:                    rec[4],
			Channel:               rec[5],
			DisclosureTextVersion: rec[6],
			VerificationResult:    entity.VerificationResult(rec[7]),
			Action:                entity.ConsentAction(rec[8]),
		}
		if rec[1] != "" {
			ev.CustomerID = entity.StringPtr(rec[1])
		}
		if ev.ID == "" || !ev.Action.Valid() || !ev.VerificationResult.Valid() {
			return nil, fmt.Errorf("consent: línea %d: evento inválido: %w", line, domain.ErrInvalidInput)
		}
		if ev.PhoneNumber == "" {
			return nil, fmt.Errorf("consent: línea %d: teléfono sin dígitos: %w", line, domain.ErrInvalidInput)
		}
		if ev.DisclosureTextVersion != entity.DisclosureTextVersion {
			return nil, fmt.Errorf("consent: línea %d: versión de texto legal %q: %w",
				line, ev.DisclosureTextVersion, domain.ErrInvalidInput)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ImportConsentEvents agrega al final los eventos cuyo ID no existe todavía.
// Devuelve cuántos se agregaron; las entradas nil se ignoran. No modifica clientes.
func (e *Engine) ImportConsentEvents(ctx context.Context, incoming []*entity.ConsentEvent) (int, error) {
	events, err := e.repo.LoadEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("consent: importar: %w", err)
	}
	seen := make(map[string]bool, len(events))
	for _, ev := range events {
		seen[ev.ID] = true
	}
	added := 0
	skipped := 0
	for _, ev := range incoming {
		if ev == nil || seen[ev.ID] {
			skipped++
			continue
		}
		seen[ev.ID] = true
		events = append(events, ev)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := e.repo.SaveEvents(ctx, events); err != nil {
		return 0, fmt.Errorf("consent: importar: %w", err)
	}
	e.log.Info().Int("added", added).Int("skipped", skipped).Msg("eventos importados")
	return added, nil
}
