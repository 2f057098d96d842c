// Package kvrepo implementa ConsentRepository sobre cualquier KeyValueStore,
// guardando eventos y clientes como dos documentos JSON.
package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/internal/domain/repository"
	"github.com/jhoicas/Consent-api/pkg/logger"
)

var _ repository.ConsentRepository = (*ConsentRepo)(nil)

// ConsentRepo adaptador de documentos JSON.
// Un documento corrupto se registra y se trata como lista vacía; nunca se propaga.
type ConsentRepo struct {
	store repository.KeyValueStore
	log   *logger.Logger
}

// NewConsentRepository construye el adaptador. store puede ser nil: las lecturas
// devuelven listas vacías y las escrituras no hacen nada.
func NewConsentRepository(store repository.KeyValueStore, log *logger.Logger) *ConsentRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &ConsentRepo{store: store, log: log.Component("kvrepo")}
}

// LoadEvents lee el documento consent_events.
func (r *ConsentRepo) LoadEvents(ctx context.Context) ([]*entity.ConsentEvent, error) {
	events, err := readList[*entity.ConsentEvent](ctx, r, repository.ConsentEventsKey)
	if err != nil {
		return nil, err
	}
	return compact(events), nil
}

// SaveEvents reemplaza el documento consent_events.
func (r *ConsentRepo) SaveEvents(ctx context.Context, events []*entity.ConsentEvent) error {
	if events == nil {
		events = []*entity.ConsentEvent{}
	}
	return r.write(ctx, repository.ConsentEventsKey, events)
}

// LoadCustomers lee el documento customers.
func (r *ConsentRepo) LoadCustomers(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := readList[*entity.Customer](ctx, r, repository.CustomersKey)
	if err != nil {
		return nil, err
	}
	return compact(customers), nil
}

// SaveCustomers reemplaza el documento customers.
func (r *ConsentRepo) SaveCustomers(ctx context.Context, customers []*entity.Customer) error {
	if customers == nil {
		customers = []*entity.Customer{}
	}
	return r.write(ctx, repository.CustomersKey, customers)
}

// Clear elimina ambos documentos.
func (r *ConsentRepo) Clear(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	for _, key := range []string{repository.ConsentEventsKey, repository.CustomersKey} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("kvrepo: borrar %s: %w", key, err)
		}
	}
	return nil
}

// readList decodifica la clave como lista JSON. Ausencia, null o JSON inválido
// devuelven una lista vacía.
func readList[T any](ctx context.Context, r *ConsentRepo, key string) ([]T, error) {
	out := []T{}
	if r.store == nil {
		return out, nil
	}
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("kvrepo: leer %s: %w", key, err)
	}
	if len(raw) == 0 {
		return out, nil
	}
	var decoded []T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("documento corrupto, se usa lista vacía")
		return out, nil
	}
	if decoded == nil {
		return out, nil
	}
	return decoded, nil
}

func (r *ConsentRepo) write(ctx context.Context, key string, value any) error {
	if r.store == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvrepo: serializar %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("kvrepo: guardar %s: %w", key, err)
	}
	return nil
}

// compact descarta elementos null del documento.
func compact[T any](list []*T) []*T {
	out := list[:0]
	for _, item := range list {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
