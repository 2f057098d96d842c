package consent

import (
	"time"

	"github.com/jhoicas/Consent-api/internal/domain/entity"
)

// Filter filtros del dashboard. Campos vacíos o nil no filtran.
// DateTo es inclusivo hasta el final de ese día (UTC).
type Filter struct {
	ConsentState entity.ConsentState
	Channel      string
	LineType     entity.VerificationResult
	DateFrom     *time.Time
	DateTo       *time.Time
}

// EnrichedCustomer cliente junto con su último evento (nil si no tiene o no se encuentra).
type EnrichedCustomer struct {
	*entity.Customer
	LastEvent *entity.ConsentEvent
}

// EnrichCustomers une cada cliente con su último evento.
func EnrichCustomers(customers []*entity.Customer, events []*entity.ConsentEvent) []EnrichedCustomer {
	byID := make(map[string]*entity.ConsentEvent, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}
	out := make([]EnrichedCustomer, 0, len(customers))
	for _, c := range customers {
		ec := EnrichedCustomer{Customer: c}
		if c.HasLastEvent() {
			ec.LastEvent = byID[*c.LastConsentEventID]
		}
		out = append(out, ec)
	}
	return out
}

// FilterCustomers aplica los filtros sobre el cliente y su último evento.
// Con un filtro de fecha activo, los clientes sin último evento quedan fuera.
func FilterCustomers(customers []EnrichedCustomer, f Filter) []EnrichedCustomer {
	out := make([]EnrichedCustomer, 0, len(customers))
	for _, c := range customers {
		if f.ConsentState != "" && c.ConsentState != f.ConsentState {
			continue
		}
		if f.Channel != "" && (c.LastEvent == nil || c.LastEvent.Channel != f.Channel) {
			continue
		}
		if f.LineType != "" && (c.LastEvent == nil || c.LastEvent.VerificationResult != f.LineType) {
			continue
		}
		if f.DateFrom != nil || f.DateTo != nil {
			if c.LastEvent == nil || !f.inRange(c.LastEvent.Timestamp) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// FilterEvents aplica canal, tipo de línea y rango de fechas sobre los eventos.
func FilterEvents(events []*entity.ConsentEvent, f Filter) []*entity.ConsentEvent {
	out := make([]*entity.ConsentEvent, 0, len(events))
	for _, ev := range events {
		if f.Channel != "" && ev.Channel != f.Channel {
			continue
		}
		if f.LineType != "" && ev.VerificationResult != f.LineType {
			continue
		}
		if (f.DateFrom != nil || f.DateTo != nil) && !f.inRange(ev.Timestamp) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// ChannelOptions canales distintos en orden de primera aparición.
func ChannelOptions(events []*entity.ConsentEvent) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range events {
		if seen[ev.Channel] {
			continue
		}
		seen[ev.Channel] = true
		out = append(out, ev.Channel)
	}
	return out
}

// inRange compara el timestamp del evento con el rango. Un timestamp ilegible no coincide.
func (f Filter) inRange(timestamp string) bool {
	ts, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return false
	}
	if f.DateFrom != nil && ts.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && ts.After(EndOfDay(*f.DateTo)) {
		return false
	}
	return true
}

// EndOfDay devuelve el último milisegundo del día de t (UTC).
func EndOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}
