// Package storage abre el store clave-valor según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Consent-api/internal/domain/repository"
	"github.com/jhoicas/Consent-api/internal/infrastructure/graph"
	"github.com/jhoicas/Consent-api/internal/infrastructure/memory"
	"github.com/jhoicas/Consent-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Consent-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Consent-api/pkg/config"
	"github.com/jhoicas/Consent-api/pkg/logger"
)

// Store store abierto y su función de cierre (nunca nil).
type Store struct {
	repository.KeyValueStore
	Driver string
	Close  func()
}

// Open conecta el backend configurado. Postgres y Neo4j verifican conectividad al abrir.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	driver := cfg.Storage.Driver
	switch driver {
	case config.StorageMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return &Store{KeyValueStore: memory.NewKVStore(), Driver: driver, Close: func() {}}, nil

	case config.StorageSQLite, "":
		kv, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Storage.SQLitePath).Msg("store SQLite abierto")
		return &Store{KeyValueStore: kv, Driver: config.StorageSQLite, Close: func() {
			if err := kv.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar SQLite")
			}
		}}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("store PostgreSQL conectado")
		return &Store{KeyValueStore: postgres.NewKVStore(pool), Driver: driver, Close: pool.Close}, nil

	case config.StorageNeo4j:
		g, err := graph.Connect(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("uri", cfg.Graph.URI).Msg("store Neo4j conectado")
		return &Store{KeyValueStore: graph.NewKVStore(g), Driver: driver, Close: func() {
			if err := g.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("cerrar Neo4j")
			}
		}}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", driver)
}
