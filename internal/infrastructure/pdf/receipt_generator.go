// Package pdf genera el comprobante de una solicitud de permuta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sistema de Permuta  │  Permuta #N + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nombre + Email + Plan                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Origen | Destino                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO: estado actual + fechas                             │
//	│  FOOTER: QR de verificación + leyenda                       │
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

	apppermuta "github.com/jhoicas/Permuta-api/internal/application/permuta"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/receipt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ apppermuta.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa permuta.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	appName string
}

// NewReceiptGenerator construye el generador; appName aparece como autor del documento.
func NewReceiptGenerator(appName string) *ReceiptGenerator {
	return &ReceiptGenerator{appName: appName}
}

// PermutaReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) PermutaReceipt(_ context.Context, data apppermuta.ReceiptData) ([]byte, error) {
	if data.Permuta == nil {
		return nil, fmt.Errorf("pdf: permuta requerida")
	}
	p := data.Permuta
	verification, err := receipt.Calculate(receipt.ParamsFor(p, g.appName))
	if err != nil {
		return nil, fmt.Errorf("pdf: código de verificación: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Comprobante de permuta #%d", p.ID), true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(ownerRow(p.UserID, data.Owner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(sectorsRow(p, data.FromSector, data.ToSector))
	if p.Description != nil && *p.Description != "" {
		m.AddRows(descriptionRow(*p.Description))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(statusRow(p))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(verification))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(p *entity.Permuta) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("SISTEMA DE PERMUTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de solicitud de intercambio", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERMUTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", p.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Creada: "+p.CreatedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// ownerRow: datos del solicitante; si el usuario ya no existe se imprime solo el ID.
func ownerRow(userID string, owner *entity.User) core.Row {
	name, email, plan := userID, "—", "—"
	if owner != nil {
		if full := fullName(owner); full != "" {
			name = full
		}
		email = deref(owner.Email, "—")
		plan = owner.AccountType
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("ID: %s   |   Email: %s   |   Plan: %s", userID, email, plan),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string) core.Col {
		return col.New(6).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(h("Sector de origen"), h("Sector de destino")).
		WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func sectorsRow(p *entity.Permuta, from, to *entity.Sector) core.Row {
	cell := func(id int64, s *entity.Sector) core.Col {
		return col.New(6).Add(
			text.New(sectorName(id, s), props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Left: 1}),
			text.New(sectorDetail(s), props.Text{Size: 7, Top: 8, Left: 1, Color: colorGray}),
		)
	}
	return row.New(16).Add(cell(p.FromSectorID, from), cell(p.ToSectorID, to))
}

func descriptionRow(description string) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("Descripción", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		text.New(description, props.Text{Size: 8, Top: 7}),
	))
}

func statusRow(p *entity.Permuta) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Top: top, Left: 1})
	}
	completed := "—"
	if p.CompletedAt != nil {
		completed = p.CompletedAt.Format(dateLayout)
	}
	return row.New(20).Add(
		col.New(4).Add(
			label("Estado:", 1),
			label("Última actualización:", 7),
			label("Completada:", 13),
		),
		col.New(8).Add(
			text.New(strings.ToUpper(string(p.Status)), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1, Left: 1, Color: colorPrimary,
			}),
			value(p.UpdatedAt.Format(dateLayout), 7),
			value(completed, 13),
		),
	)
}

// footerRow: QR con el código de verificación + leyenda.
func footerRow(verification string) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(verification, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("El código QR identifica la permuta y su estado\nal momento de emitir este comprobante.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Código: "+receipt.Short(verification), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 14, Left: 3, Color: colorPrimary,
			}),
			text.New("Emitido: "+time.Now().Format(dateLayout), props.Text{
				Size: 8, Top: 20, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectorName(id int64, s *entity.Sector) string {
	if s == nil {
		return fmt.Sprintf("Sector #%d", id)
	}
	return s.Name
}

func sectorDetail(s *entity.Sector) string {
	if s == nil {
		return "—"
	}
	parts := make([]string, 0, 3)
	for _, f := range []*string{s.City, s.Address, s.Phone} {
		if f != nil && *f != "" {
			parts = append(parts, *f)
		}
	}
	if len(parts) == 0 {
		return deref(s.Description, "—")
	}
	return strings.Join(parts, " · ")
}

func fullName(u *entity.User) string {
	return strings.TrimSpace(deref(u.FirstName, "") + " " + deref(u.LastName, ""))
}

func deref(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
