package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/coopfondos/coopfondos-api/internal/application/uploads"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

var _ uploads.Parser = (*Parser)(nil)

// Parser extrae filas de archivos CSV y XLSX por módulo financiero.
// Los CSV que no son UTF-8 válido se reintentan como ISO-8859-1 (los sistemas
// contables legados suelen exportar en latin-1).
type Parser struct{}

// NewParser construye el parser de archivos de carga.
func NewParser() *Parser {
	return &Parser{}
}

// Parse lee el archivo y devuelve las filas del módulo correspondiente.
// Las filas con montos ilegibles se descartan y se cuentan en Skipped.
func (p *Parser) Parse(module, fileName string, content []byte) (*uploads.ParsedData, error) {
	rows, err := readRows(fileName, content)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("el archivo no tiene filas de datos (se espera encabezado más datos)")
	}
	// La primera fila es el encabezado.
	rows = rows[1:]

	switch module {
	case entity.ModuleBalanceSheet:
		return parseBalanceRows(rows)
	case entity.ModuleCashFlow:
		return parseCashFlowRows(rows)
	case entity.ModuleMembershipFees:
		return parseFeeRows(rows)
	case entity.ModuleRatios:
		return parseRatioRows(rows)
	}
	return nil, fmt.Errorf("módulo desconocido: %s", module)
}

func readRows(fileName string, content []byte) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return readCSV(content)
	}
	return readXLSX(content)
}

func readCSV(content []byte) ([][]string, error) {
	if !utf8.Valid(content) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), content)
		if err != nil {
			return nil, fmt.Errorf("decodificar CSV latin-1: %w", err)
		}
		content = decoded
	}
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// detectDelimiter distingue CSV con coma del separado por punto y coma que
// genera Excel en locales hispanos.
func detectDelimiter(content []byte) rune {
	end := bytes.IndexByte(content, '\n')
	if end < 0 {
		end = len(content)
	}
	firstLine := content[:end]
	if bytes.Count(firstLine, []byte{';'}) > bytes.Count(firstLine, []byte{','}) {
		return ';'
	}
	return ','
}

func readXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("abrir XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("el archivo XLSX no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	return rows, nil
}

// Columnas esperadas por módulo (tras el encabezado):
//   balance-sheet:   código, cuenta, categoría, subcategoría, débito inicial, crédito inicial,
//                    débito período, crédito período, débito final, crédito final
//   cash-flow:       actividad, descripción, monto
//   membership-fees: código socio, nombre, aporte esperado, pago realizado
//   ratios:          nombre, valor, descripción

func parseBalanceRows(rows [][]string) (*uploads.ParsedData, error) {
	out := &uploads.ParsedData{}
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 10 {
			out.Skipped++
			continue
		}
		category, ok := parseCategory(row[2])
		if !ok {
			out.Skipped++
			continue
		}
		amounts := make([]decimal.Decimal, 6)
		valid := true
		for i := 0; i < 6; i++ {
			v, err := parseAmount(row[4+i])
			if err != nil {
				valid = false
				break
			}
			amounts[i] = v
		}
		if !valid {
			out.Skipped++
			continue
		}
		out.Balance = append(out.Balance, &entity.BalanceEntry{
			AccountCode:   strings.TrimSpace(row[0]),
			AccountName:   strings.TrimSpace(row[1]),
			Category:      category,
			Subcategory:   strings.TrimSpace(row[3]),
			InitialDebit:  amounts[0],
			InitialCredit: amounts[1],
			PeriodDebit:   amounts[2],
			PeriodCredit:  amounts[3],
			FinalDebit:    amounts[4],
			FinalCredit:   amounts[5],
		})
	}
	return out, nil
}

func parseCashFlowRows(rows [][]string) (*uploads.ParsedData, error) {
	out := &uploads.ParsedData{}
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 3 {
			out.Skipped++
			continue
		}
		category, ok := parseFlowCategory(row[0])
		if !ok {
			out.Skipped++
			continue
		}
		amount, err := parseAmount(row[2])
		if err != nil {
			out.Skipped++
			continue
		}
		out.CashFlow = append(out.CashFlow, &entity.CashFlowEntry{
			Category:    category,
			Description: strings.TrimSpace(row[1]),
			Amount:      amount,
		})
	}
	return out, nil
}

func parseFeeRows(rows [][]string) (*uploads.ParsedData, error) {
	out := &uploads.ParsedData{}
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 4 {
			out.Skipped++
			continue
		}
		expected, err := parseAmount(row[2])
		if err != nil {
			out.Skipped++
			continue
		}
		paid, err := parseAmount(row[3])
		if err != nil {
			out.Skipped++
			continue
		}
		out.Fees = append(out.Fees, &entity.MembershipFee{
			MemberID:             strings.TrimSpace(row[0]),
			MemberName:           strings.TrimSpace(row[1]),
			ExpectedContribution: expected,
			PaymentMade:          paid,
		})
	}
	return out, nil
}

func parseRatioRows(rows [][]string) (*uploads.ParsedData, error) {
	out := &uploads.ParsedData{}
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 2 {
			out.Skipped++
			continue
		}
		value, err := parseAmount(row[1])
		if err != nil {
			out.Skipped++
			continue
		}
		ratio := &entity.FinancialRatio{
			Name:  strings.TrimSpace(row[0]),
			Value: value,
		}
		if len(row) > 2 {
			ratio.Description = strings.TrimSpace(row[2])
		}
		out.Ratios = append(out.Ratios, ratio)
	}
	return out, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseAmount acepta montos con separador decimal punto o coma y con símbolos
// de moneda o separadores de miles.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.NewReplacer("$", "", " ", "", " ", "").Replace(s)
	// "1.234,56" -> "1234.56"; "1,234.56" -> "1234.56"
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	} else if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func parseCategory(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "assets", "activo", "activos":
		return entity.CategoryAssets, true
	case "liabilities", "pasivo", "pasivos":
		return entity.CategoryLiabilities, true
	case "equity", "patrimonio":
		return entity.CategoryEquity, true
	}
	return "", false
}

func parseFlowCategory(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "operating", "operación", "operacion":
		return entity.FlowOperating, true
	case "investing", "inversión", "inversion":
		return entity.FlowInvesting, true
	case "financing", "financiamiento", "financiación", "financiacion":
		return entity.FlowFinancing, true
	}
	return "", false
}
