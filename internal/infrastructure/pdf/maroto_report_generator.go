// Package pdf genera el reporte de auditoría de consentimientos con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: clientes por estado / eventos por verificación    │
//	│  TASAS: % válidos, pendientes y revocados                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Teléfono | Canal | Acción | Línea | IP      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: versión del texto de divulgación                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appconsent "github.com/jhoicas/Consent-api/internal/application/consent"
	"github.com/jhoicas/Consent-api/internal/domain/entity"
	"github.com/jhoicas/Consent-api/pkg/phone"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRevoked = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa consent.ConsentReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador. title aparece en el header y en los metadatos.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Consent Audit Report"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateConsentReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateConsentReport(
	_ context.Context,
	summary *appconsent.Summary,
	generatedAt time.Time,
) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, summary, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(countersRow(summary))
	m.AddRows(ratesRow(summary.Rates))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableEventRows(summary.Events)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha + totales (der).
func headerRow(title string, s *appconsent.Summary, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Registro de consentimientos SMS", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+at.UTC().Format("2006-01-02 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d clientes  |  %d eventos", len(s.Customers), len(s.Events)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

// countersRow: clientes por estado (izq) y eventos por resultado de verificación (der).
func countersRow(s *appconsent.Summary) core.Row {
	states := col.New(6).Add(sectionTitle("CLIENTES POR ESTADO"))
	for i, st := range entity.ConsentStates {
		states.Add(counterText(string(st), s.ConsentStateCounts[st], float64(6+i*5)))
	}
	lines := col.New(6).Add(sectionTitle("EVENTOS POR TIPO DE LÍNEA"))
	for i, v := range entity.VerificationResults {
		lines.Add(counterText(string(v), s.VerificationCounts[v], float64(6+i*5)))
	}
	return row.New(28).Add(states, lines)
}

// ratesRow: porcentajes del dashboard.
func ratesRow(r appconsent.Rates) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Válidos: %s%%   |   Pendientes: %s%%   |   Revocados: %s%%",
			r.Valid.StringFixed(2), r.Pending.StringFixed(2), r.Revoked.StringFixed(2),
		), props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary}),
	))
}

// tableHeaderRow: cabecera de la tabla de eventos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Teléfono", 2, align.Left),
		h("Canal", 2, align.Left),
		h("Acción", 2, align.Center),
		h("Línea", 1, align.Center),
		h("IP", 2, align.Right),
	)
}

// tableEventRows: una fila por evento, en orden de almacenamiento.
func tableEventRows(events []*entity.ConsentEvent) []core.Row {
	result := make([]core.Row, 0, len(events))
	for _, ev := range events {
		actionProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if ev.Action == entity.ActionOptOut {
			actionProps.Color = colorRevoked
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(ev.Timestamp, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(phone.Format(ev.PhoneNumber), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(ev.Channel, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(ev.Action), actionProps)),
			col.New(1).Add(text.New(string(ev.VerificationResult), props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(ev.IP, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// footerRow: leyenda con la versión del texto de divulgación.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Cada evento conserva la versión del texto de divulgación aceptado ("+
				entity.DisclosureTextVersion+"), el canal y la IP de captura.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Component {
	return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
}

func counterText(label string, n int, top float64) core.Component {
	return text.New(fmt.Sprintf("%s: %d", label, n), props.Text{Size: 8, Top: top, Left: 2})
}
