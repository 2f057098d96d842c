// import_events agrega al store los eventos de un CSV exportado por la API.
//
// Uso: go run ./cmd/import_events [-latin1] ruta/consent-events.csv
// Con -latin1 el archivo se decodifica como ISO-8859-1 (exports editados en hojas de cálculo).
// Los eventos cuyo ID ya existe se omiten; los clientes no se modifican.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/infrastructure/kvrepo"
	"github.com/jhoicas/Consent-api/internal/infrastructure/storage"
	"github.com/jhoicas/Consent-api/pkg/config"
	"github.com/jhoicas/Consent-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "decodificar el archivo como ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: import_events [-latin1] archivo.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	events, err := appconsent.ParseEventsCSV(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
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
	added, err := engine.ImportConsentEvents(ctx, events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("%d eventos leídos, %d agregados, %d omitidos\n", len(events), added, len(events)-added)
}
