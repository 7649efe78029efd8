// Package excel implementa la lectura y escritura de archivos XLSX/CSV para los
// módulos financieros.
package excel

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/application/reports"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
)

var _ reports.SpreadsheetBuilder = (*Exporter)(nil)

// Exporter genera los archivos XLSX de exportación con excelize.
type Exporter struct{}

// NewExporter construye el generador de hojas de cálculo.
func NewExporter() *Exporter {
	return &Exporter{}
}

// BalanceSheet exporta el balance general a XLSX.
func (e *Exporter) BalanceSheet(coopName string, p finance.Period, report *dto.BalanceSheetDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Balance General"
	if err := renameDefaultSheet(f, sheet); err != nil {
		return nil, err
	}
	if err := e.writeBalanceSheet(f, sheet, coopName, p, report); err != nil {
		return nil, err
	}
	return save(f)
}

// CashFlow exporta el flujo de caja a XLSX.
func (e *Exporter) CashFlow(coopName string, p finance.Period, report *dto.CashFlowDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Flujo de Caja"
	if err := renameDefaultSheet(f, sheet); err != nil {
		return nil, err
	}
	if err := e.writeCashFlow(f, sheet, coopName, p, report); err != nil {
		return nil, err
	}
	return save(f)
}

// MembershipFees exporta los aportes de socios a XLSX.
func (e *Exporter) MembershipFees(coopName string, p finance.Period, report *dto.FeesDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Aportes"
	if err := renameDefaultSheet(f, sheet); err != nil {
		return nil, err
	}
	if err := e.writeFees(f, sheet, coopName, p, report); err != nil {
		return nil, err
	}
	return save(f)
}

// Ratios exporta los indicadores financieros a XLSX.
func (e *Exporter) Ratios(coopName string, p finance.Period, ratios []dto.RatioDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Indicadores"
	if err := renameDefaultSheet(f, sheet); err != nil {
		return nil, err
	}
	if err := e.writeRatios(f, sheet, coopName, p, ratios); err != nil {
		return nil, err
	}
	return save(f)
}

// FullWorkbook arma un libro con una hoja por módulo.
func (e *Exporter) FullWorkbook(coopName string, p finance.Period, balance *dto.BalanceSheetDTO, cashFlow *dto.CashFlowDTO, fees *dto.FeesDTO, ratios []dto.RatioDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := renameDefaultSheet(f, "Balance General"); err != nil {
		return nil, err
	}
	for _, name := range []string{"Flujo de Caja", "Aportes", "Indicadores"} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("crear hoja %s: %w", name, err)
		}
	}
	if err := e.writeBalanceSheet(f, "Balance General", coopName, p, balance); err != nil {
		return nil, err
	}
	if err := e.writeCashFlow(f, "Flujo de Caja", coopName, p, cashFlow); err != nil {
		return nil, err
	}
	if err := e.writeFees(f, "Aportes", coopName, p, fees); err != nil {
		return nil, err
	}
	if err := e.writeRatios(f, "Indicadores", coopName, p, ratios); err != nil {
		return nil, err
	}
	return save(f)
}

func (e *Exporter) writeBalanceSheet(f *excelize.File, sheet, coopName string, p finance.Period, report *dto.BalanceSheetDTO) error {
	if err := writeTitle(f, sheet, coopName, "Balance General", p); err != nil {
		return err
	}
	headers := []any{"Código", "Cuenta", "Categoría", "Subcategoría",
		"Débito Inicial", "Crédito Inicial", "Débito Período", "Crédito Período", "Débito Final", "Crédito Final"}
	if err := writeRow(f, sheet, 3, headers); err != nil {
		return err
	}
	row := 4
	for _, entry := range report.Entries {
		values := []any{
			entry.AccountCode, entry.AccountName, categoryLabel(entry.Category), entry.Subcategory,
			num(entry.InitialDebit), num(entry.InitialCredit),
			num(entry.PeriodDebit), num(entry.PeriodCredit),
			num(entry.FinalDebit), num(entry.FinalCredit),
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	row++
	totals := [][]any{
		{"Total Activos", num(report.Summary.TotalAssets)},
		{"Total Pasivos", num(report.Summary.TotalLiabilities)},
		{"Total Patrimonio", num(report.Summary.TotalEquity)},
		{"Balance Cuadrado", balancedLabel(report.Summary.IsBalanced)},
	}
	for _, t := range totals {
		if err := writeRow(f, sheet, row, t); err != nil {
			return err
		}
		row++
	}
	return nil
}

func (e *Exporter) writeCashFlow(f *excelize.File, sheet, coopName string, p finance.Period, report *dto.CashFlowDTO) error {
	if err := writeTitle(f, sheet, coopName, "Flujo de Caja", p); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 3, []any{"Actividad", "Descripción", "Monto"}); err != nil {
		return err
	}
	row := 4
	for _, entry := range report.Entries {
		if err := writeRow(f, sheet, row, []any{flowLabel(entry.Category), entry.Description, num(entry.Amount)}); err != nil {
			return err
		}
		row++
	}
	row++
	totals := [][]any{
		{"Operación", num(report.Summary.Operating)},
		{"Inversión", num(report.Summary.Investing)},
		{"Financiamiento", num(report.Summary.Financing)},
		{"Flujo Neto", num(report.Summary.NetCashFlow)},
	}
	for _, t := range totals {
		if err := writeRow(f, sheet, row, t); err != nil {
			return err
		}
		row++
	}
	return nil
}

func (e *Exporter) writeFees(f *excelize.File, sheet, coopName string, p finance.Period, report *dto.FeesDTO) error {
	if err := writeTitle(f, sheet, coopName, "Aportes de Socios", p); err != nil {
		return err
	}
	headers := []any{"Código Socio", "Nombre", "Aporte Esperado", "Pago Realizado", "Deuda", "Estado"}
	if err := writeRow(f, sheet, 3, headers); err != nil {
		return err
	}
	row := 4
	for _, fee := range report.Fees {
		values := []any{
			fee.MemberID, fee.MemberName,
			num(fee.ExpectedContribution), num(fee.PaymentMade), num(fee.Debt),
			statusLabel(fee.Status),
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	row++
	totals := [][]any{
		{"Total Esperado", num(report.Summary.TotalExpected)},
		{"Total Pagado", num(report.Summary.TotalPaid)},
		{"Deuda Total", num(report.Summary.TotalDebt)},
		{"Tasa de Cobranza (%)", num(report.Summary.CollectionRate)},
	}
	for _, t := range totals {
		if err := writeRow(f, sheet, row, t); err != nil {
			return err
		}
		row++
	}
	return nil
}

func (e *Exporter) writeRatios(f *excelize.File, sheet, coopName string, p finance.Period, ratios []dto.RatioDTO) error {
	if err := writeTitle(f, sheet, coopName, "Indicadores Financieros", p); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 3, []any{"Indicador", "Valor", "Descripción"}); err != nil {
		return err
	}
	row := 4
	for _, ratio := range ratios {
		if err := writeRow(f, sheet, row, []any{ratio.Name, num(ratio.Value), ratio.Description}); err != nil {
			return err
		}
		row++
	}
	return nil
}

func renameDefaultSheet(f *excelize.File, name string) error {
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("renombrar hoja: %w", err)
	}
	return nil
}

func writeTitle(f *excelize.File, sheet, coopName, title string, p finance.Period) error {
	if err := writeRow(f, sheet, 1, []any{fmt.Sprintf("%s — %s (%s)", coopName, title, p.Format())}); err != nil {
		return err
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("celda fila %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("escribir fila %d: %w", row, err)
	}
	return nil
}

func save(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

// num convierte el decimal a float64 para que Excel lo trate como número.
// La pérdida de precisión es aceptable en un archivo de presentación.
func num(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func categoryLabel(category string) string {
	switch category {
	case "assets":
		return "Activos"
	case "liabilities":
		return "Pasivos"
	case "equity":
		return "Patrimonio"
	}
	return category
}

func flowLabel(category string) string {
	switch category {
	case "operating":
		return "Operación"
	case "investing":
		return "Inversión"
	case "financing":
		return "Financiamiento"
	}
	return category
}

func statusLabel(status string) string {
	if status == "with-debt" {
		return "Con deuda"
	}
	return "Al día"
}

func balancedLabel(balanced bool) string {
	if balanced {
		return "Sí"
	}
	return "No"
}
