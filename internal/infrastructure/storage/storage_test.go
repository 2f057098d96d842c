package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Consent-api/internal/infrastructure/graph"
	"github.com/jhoicas/Consent-api/internal/infrastructure/storage"
	"github.com/jhoicas/Consent-api/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	s, err := storage.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte(`[]`)))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{
		Driver:     config.StorageSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "consent.db"),
	}}
	s, err := storage.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, config.StorageSQLite, s.Driver)

	got, err := s.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpen_Neo4jSinURI(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageNeo4j}}
	_, err := storage.Open(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, graph.ErrMissingURI)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "redis"}}
	_, err := storage.Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}
