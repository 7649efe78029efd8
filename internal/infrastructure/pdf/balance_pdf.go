// Package pdf implementa la generación del Balance General en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cooperativa + Período                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Cuenta | Categoría | Débito F. | Crédito F. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Activos / Pasivos / Patrimonio / Cuadre            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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
	"github.com/shopspring/decimal"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/reports"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
)

var _ reports.BalancePDFBuilder = (*BalancePDFBuilder)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 183, Green: 28, Blue: 28}
	colorGreen   = &props.Color{Red: 27, Green: 94, Blue: 32}
)

// BalancePDFBuilder genera el Balance General en PDF usando Maroto v2.
type BalancePDFBuilder struct{}

// NewBalancePDFBuilder construye el generador.
func NewBalancePDFBuilder() *BalancePDFBuilder { return &BalancePDFBuilder{} }

// BalanceSheet genera el PDF del balance y devuelve sus bytes.
func (g *BalancePDFBuilder) BalanceSheet(coopName string, p finance.Period, report *dto.BalanceSheetDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Balance General", true).
		WithAuthor(coopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(coopName, p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, entry := range report.Entries {
		m.AddRows(entryRow(entry))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(report.Summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la cooperativa (izq) y período (der).
func headerRow(coopName string, p finance.Period) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(coopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Balance General", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(p.Format(), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 4,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, alignment align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignment, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(2, "Código", align.Left),
		header(4, "Cuenta", align.Left),
		header(2, "Categoría", align.Left),
		header(2, "Débito Final", align.Right),
		header(2, "Crédito Final", align.Right),
	)
}

func entryRow(entry dto.BalanceEntryDTO) core.Row {
	return row.New(5).Add(
		col.New(2).Add(text.New(entry.AccountCode, props.Text{Size: 8})),
		col.New(4).Add(text.New(entry.AccountName, props.Text{Size: 8})),
		col.New(2).Add(text.New(categoryLabel(entry.Category), props.Text{Size: 8, Color: colorGray})),
		col.New(2).Add(text.New(money(entry.FinalDebit), props.Text{Size: 8, Align: align.Right})),
		col.New(2).Add(text.New(money(entry.FinalCredit), props.Text{Size: 8, Align: align.Right})),
	)
}

func totalsRows(summary dto.BalanceSummaryDTO) []core.Row {
	totalRow := func(label string, value decimal.Decimal) core.Row {
		return row.New(6).Add(
			col.New(8).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right})),
			col.New(4).Add(text.New(money(value), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right})),
		)
	}

	cuadreColor, cuadreText := colorGreen, "BALANCE CUADRADO"
	if !summary.IsBalanced {
		cuadreColor, cuadreText = colorRed, "BALANCE DESCUADRADO"
	}

	return []core.Row{
		totalRow("Total Activos", summary.TotalAssets),
		totalRow("Total Pasivos", summary.TotalLiabilities),
		totalRow("Total Patrimonio", summary.TotalEquity),
		row.New(8).Add(
			col.New(12).Add(text.New(cuadreText, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: cuadreColor, Top: 2,
			})),
		),
	}
}

func money(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

func categoryLabel(category string) string {
	switch category {
	case "assets":
		return "Activo"
	case "liabilities":
		return "Pasivo"
	case "equity":
		return "Patrimonio"
	}
	return category
}
