package consent

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Consent-api/internal/domain/entity"
)

// Summary agregación de solo lectura para el dashboard. Se recalcula en cada llamada.
type Summary struct {
	Customers          []*entity.Customer
	Events             []*entity.ConsentEvent
	ConsentStateCounts map[entity.ConsentState]int       // siempre con los 4 estados
	ChannelCounts      map[string]int                    // crece con cada canal nuevo
	VerificationCounts map[entity.VerificationResult]int // siempre con los 4 resultados
	Rates              Rates
}

// Rates porcentaje de clientes por estado (0–100, 2 decimales).
type Rates struct {
	Valid   decimal.Decimal
	Pending decimal.Decimal
	Revoked decimal.Decimal
}

// SummarizeCustomers cuenta clientes por estado, eventos por canal y eventos por verificación.
func (e *Engine) SummarizeCustomers(ctx context.Context) (*Summary, error) {
	customers, err := e.repo.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("consent: resumen: clientes: %w", err)
	}
	events, err := e.repo.LoadEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("consent: resumen: eventos: %w", err)
	}
	return Summarize(customers, events), nil
}

// Summarize calcula el resumen sobre listas ya cargadas.
func Summarize(customers []*entity.Customer, events []*entity.ConsentEvent) *Summary {
	s := &Summary{
		Customers:          customers,
		Events:             events,
		ConsentStateCounts: make(map[entity.ConsentState]int, len(entity.ConsentStates)),
		ChannelCounts:      make(map[string]int),
		VerificationCounts: make(map[entity.VerificationResult]int, len(entity.VerificationResults)),
	}
	for _, st := range entity.ConsentStates {
		s.ConsentStateCounts[st] = 0
	}
	for _, v := range entity.VerificationResults {
		s.VerificationCounts[v] = 0
	}

	for _, ev := range events {
		s.ChannelCounts[ev.Channel]++
		s.VerificationCounts[ev.VerificationResult]++
	}
	for _, c := range customers {
		s.ConsentStateCounts[c.ConsentState]++
	}

	total := len(customers)
	s.Rates = Rates{
		Valid:   percentage(s.ConsentStateCounts[entity.ConsentStateValid], total),
		Pending: percentage(s.ConsentStateCounts[entity.ConsentStatePendingVerification], total),
		Revoked: percentage(s.ConsentStateCounts[entity.ConsentStateRevoked], total),
	}
	return s
}

func percentage(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}
