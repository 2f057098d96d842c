// Package graph guarda los documentos de consentimiento como nodos Neo4j
// (:ConsentDocument {key, value, updatedAt}).
package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// DocumentGraph operaciones sobre nodos ConsentDocument que usa KVStore.
type DocumentGraph interface {
	ReadDocument(ctx context.Context, key string) (value string, found bool, err error)
	WriteDocument(ctx context.Context, key, value string, updatedAt time.Time) error
	DeleteDocument(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

// Options conexión Bolt.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI la URI del grafo no está configurada.
var ErrMissingURI = errors.New("graph: la URI es obligatoria")

const (
	readDocumentCypher   = `MATCH (d:ConsentDocument {key: $key}) RETURN d.value AS value`
	writeDocumentCypher  = `MERGE (d:ConsentDocument {key: $key}) SET d.value = $value, d.updatedAt = $updatedAt`
	deleteDocumentCypher = `MATCH (d:ConsentDocument {key: $key}) DETACH DELETE d`
)

var _ DocumentGraph = (*Neo4jGraph)(nil)

// Neo4jGraph DocumentGraph sobre el driver oficial.
type Neo4jGraph struct {
	driver   neo4j.DriverWithContext
	database string
}

// Connect abre el driver y verifica conectividad antes de devolverlo.
func Connect(ctx context.Context, opts Options) (*Neo4jGraph, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}
	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}
	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("graph: crear driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("graph: verificar conectividad: %w", err)
	}
	return &Neo4jGraph{driver: driver, database: opts.Database}, nil
}

func (g *Neo4jGraph) query(ctx context.Context, cypher string, params map[string]any,
	routing neo4j.ExecuteQueryConfigurationOption) (*neo4j.EagerResult, error) {
	return neo4j.ExecuteQuery(ctx, g.driver, cypher, params, neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(g.database), routing)
}

// ReadDocument devuelve el valor del nodo; found=false si no existe.
func (g *Neo4jGraph) ReadDocument(ctx context.Context, key string) (string, bool, error) {
	res, err := g.query(ctx, readDocumentCypher, map[string]any{"key": key},
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return "", false, err
	}
	if len(res.Records) == 0 {
		return "", false, nil
	}
	raw, _ := res.Records[0].Get("value")
	value, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("graph: el documento %s no guarda texto", key)
	}
	return value, true, nil
}

func (g *Neo4jGraph) WriteDocument(ctx context.Context, key, value string, updatedAt time.Time) error {
	_, err := g.query(ctx, writeDocumentCypher, map[string]any{
		"key":       key,
		"value":     value,
		"updatedAt": updatedAt.UnixMilli(),
	}, neo4j.ExecuteQueryWithWritersRouting())
	return err
}

func (g *Neo4jGraph) DeleteDocument(ctx context.Context, key string) error {
	_, err := g.query(ctx, deleteDocumentCypher, map[string]any{"key": key},
		neo4j.ExecuteQueryWithWritersRouting())
	return err
}

// Close cierra el driver y su pool.
func (g *Neo4jGraph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}
