// Package pdf genera la orden de trabajo imprimible de un servicio del taller.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio    │  N° de orden + Fecha        │
//	│  Dirección / Teléfono                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE  │  BICICLETA (marca, modelo, serie)                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SERVICIO: nombre, tipo, estado, asignado, fechas            │
//	│  Descripción / Notas                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL  │  QR con el número de orden                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/biciros/internal/application/services"
	"github.com/jhoicas/biciros/internal/domain/entity"
)

var _ services.WorkOrderGenerator = (*WorkOrderGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 17, Blue: 23}
	colorAccent  = &props.Color{Red: 59, Green: 130, Blue: 246}
	colorGray    = &props.Color{Red: 100, Green: 116, Blue: 139}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// WorkOrderGenerator implementa services.WorkOrderGenerator con Maroto v2.
type WorkOrderGenerator struct{}

// NewWorkOrderGenerator construye el generador.
func NewWorkOrderGenerator() *WorkOrderGenerator { return &WorkOrderGenerator{} }

// GenerateWorkOrderPDF genera el PDF y devuelve sus bytes.
func (g *WorkOrderGenerator) GenerateWorkOrderPDF(_ context.Context, svc entity.Service, business entity.AppSettings) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de trabajo "+svc.Number, true).
		WithAuthor(nonEmpty(business.BusinessName, "BICIROS"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(svc, business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(partiesRow(svc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(detailRows(svc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))
	m.AddRows(totalRow(svc))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(svc entity.Service, business entity.AppSettings) core.Row {
	contact := strings.TrimSpace(strings.Join(nonBlank(business.BusinessAddress, business.BusinessPhone), "   |   "))
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(business.BusinessName, "BICIROS"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(contact, "—"), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorAccent, Top: 1,
			}),
			text.New(nonEmpty(svc.Number, svc.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+svc.CreatedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partiesRow(svc entity.Service) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			sectionTitle("CLIENTE"),
			text.New(nonEmpty(svc.CustomerName, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(6).Add(
			sectionTitle("BICICLETA"),
			text.New(fmt.Sprintf("%s %s", nonEmpty(svc.BikeBrand, "—"), svc.BikeModel), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Serie: "+nonEmpty(svc.SerialNumber, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func detailRows(svc entity.Service) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(nonEmpty(value, "—"), props.Text{Size: 8, Top: 1})),
		)
	}
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(sectionTitle("SERVICIO"))),
		field("Servicio:", svc.Name),
		field("Tipo:", string(svc.Type)),
		field("Estado:", string(svc.Status)),
		field("Asignado a:", svc.AssigneeName),
		field("Programado:", formatDate(svc.ScheduledAt)),
		field("Completado:", formatDate(svc.CompletedAt)),
	}
	if svc.Description != "" {
		rows = append(rows, field("Descripción:", svc.Description))
	}
	if svc.Notes != "" {
		rows = append(rows, field("Notas:", svc.Notes))
	}
	return rows
}

func totalRow(svc entity.Service) core.Row {
	qr := nonEmpty(svc.Number, svc.ID)
	return row.New(34).Add(
		col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8, Right: 2,
			}),
			text.New("$"+formatMoney(svc.Price.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right, Color: colorAccent, Top: 15, Right: 2,
			}),
		),
	)
}

func signatureRow() core.Row {
	return row.New(20).Add(
		col.New(6).Add(text.New("_____________________________\nFirma del cliente", props.Text{
			Size: 8, Align: align.Center, Top: 10, Color: colorGray,
		})),
		col.New(6).Add(text.New("_____________________________\nRecibido por el taller", props.Text{
			Size: 8, Align: align.Center, Top: 10, Color: colorGray,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Component {
	return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1})
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonBlank(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1500" → "-1.500"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
