package repository

import (
	"context"

	"github.com/jhoicas/Consent-api/internal/domain/entity"
)

// Claves de los documentos persistidos.
const (
	ConsentEventsKey = "consent_events"
	CustomersKey     = "customers"
)

// ConsentRepository define el puerto de persistencia de eventos y clientes.
// Las listas se leen y escriben completas; LoadEvents conserva el orden de inserción.
type ConsentRepository interface {
	LoadEvents(ctx context.Context) ([]*entity.ConsentEvent, error)
	SaveEvents(ctx context.Context, events []*entity.ConsentEvent) error
	LoadCustomers(ctx context.Context) ([]*entity.Customer, error)
	SaveCustomers(ctx context.Context, customers []*entity.Customer) error
	Clear(ctx context.Context) error
}
