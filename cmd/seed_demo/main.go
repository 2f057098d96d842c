// seed_demo registra capturas de demostración a partir de un archivo YAML.
//
// Uso: go run ./cmd/seed_demo [ruta/demo.yaml]
// Por defecto lee fixtures/demo.yaml. Usa el mismo STORAGE_DRIVER que la API.
package main

import (
	"context"
	"fmt"
	"os"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/infrastructure/fixtures"
	"github.com/jhoicas/Consent-api/internal/infrastructure/kvrepo"
	"github.com/jhoicas/Consent-api/internal/infrastructure/storage"
	"github.com/jhoicas/Consent-api/pkg/config"
	"github.com/jhoicas/Consent-api/pkg/logger"
)

func main() {
	path := "fixtures/demo.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	seed, err := fixtures.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar semillas: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	engine := appconsent.NewEngine(kvrepo.NewConsentRepository(store, log), appconsent.WithLogger(log))
	n, err := seed.Apply(ctx, engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sembrar (%d registradas): %v\n", n, err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("%s: %d capturas registradas en %s\n", seed.Name, n, store.Driver)
}
