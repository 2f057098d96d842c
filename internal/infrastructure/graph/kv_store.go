package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Consent-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore implementa KeyValueStore con nodos ConsentDocument.
type KVStore struct {
	graph DocumentGraph
	now   func() time.Time
}

// NewKVStore construye el store sobre un grafo ya conectado.
func NewKVStore(graph DocumentGraph) *KVStore {
	return &KVStore{graph: graph, now: time.Now}
}

// Get devuelve el valor del nodo o nil si no existe.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, found, err := s.graph.ReadDocument(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("graph: get %s: %w", key, err)
	}
	if !found {
		return nil, nil
	}
	return []byte(value), nil
}

// Set crea o actualiza el nodo y sella updatedAt en UTC.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.graph.WriteDocument(ctx, key, string(value), s.now().UTC()); err != nil {
		return fmt.Errorf("graph: set %s: %w", key, err)
	}
	return nil
}

// Delete borra el nodo si existe.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.graph.DeleteDocument(ctx, key); err != nil {
		return fmt.Errorf("graph: delete %s: %w", key, err)
	}
	return nil
}
