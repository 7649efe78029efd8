package reports

import (
	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
)

// SpreadsheetBuilder genera los archivos XLSX de exportación.
// La implementación (excelize) vive en infrastructure/excel.
type SpreadsheetBuilder interface {
	BalanceSheet(coopName string, p finance.Period, report *dto.BalanceSheetDTO) ([]byte, error)
	CashFlow(coopName string, p finance.Period, report *dto.CashFlowDTO) ([]byte, error)
	MembershipFees(coopName string, p finance.Period, report *dto.FeesDTO) ([]byte, error)
	Ratios(coopName string, p finance.Period, ratios []dto.RatioDTO) ([]byte, error)
	// FullWorkbook arma un libro con una hoja por módulo (exportación completa).
	FullWorkbook(coopName string, p finance.Period, balance *dto.BalanceSheetDTO, cashFlow *dto.CashFlowDTO, fees *dto.FeesDTO, ratios []dto.RatioDTO) ([]byte, error)
}

// BalancePDFBuilder genera la representación PDF del balance general.
// La implementación (maroto) vive en infrastructure/pdf.
type BalancePDFBuilder interface {
	BalanceSheet(coopName string, p finance.Period, report *dto.BalanceSheetDTO) ([]byte, error)
}
