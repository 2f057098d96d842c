package repository

import "context"

// KeyValueStore puerto de almacenamiento clave-valor para documentos JSON.
// Get devuelve (nil, nil) cuando la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
