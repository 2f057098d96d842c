package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Consent-api/internal/domain"
	"github.com/jhoicas/Consent-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore implementación de KeyValueStore sobre la tabla consent_documents (usable con pool o tx).
type KVStore struct {
	q Querier
}

// NewKVStore construye el adaptador. Pasar pool o tx (Querier).
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q}
}

// Get obtiene el documento como texto JSON; nil si no existe.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.q.QueryRow(ctx, `SELECT value::text FROM consent_documents WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return []byte(value), nil
}

// Set inserta o reemplaza el documento.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO consent_documents (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		if isInvalidJSON(err) {
			return fmt.Errorf("%w: documento %s no es JSON válido", domain.ErrInvalidInput, key)
		}
		return fmt.Errorf("set document: %w", err)
	}
	return nil
}

// Delete elimina el documento por clave.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM consent_documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
