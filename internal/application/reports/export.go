package reports

import (
	"context"
	"fmt"

	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// Content types de los archivos exportados.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// ExportFile archivo exportado listo para responder al cliente.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportUseCase genera los archivos de exportación de cada módulo.
type ExportUseCase struct {
	coopRepo    repository.CooperativeRepository
	balance     *BalanceUseCase
	cashFlow    *CashFlowUseCase
	fees        *FeesUseCase
	ratios      *RatiosUseCase
	spreadsheet SpreadsheetBuilder
	pdf         BalancePDFBuilder
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	coopRepo repository.CooperativeRepository,
	balance *BalanceUseCase,
	cashFlow *CashFlowUseCase,
	fees *FeesUseCase,
	ratios *RatiosUseCase,
	spreadsheet SpreadsheetBuilder,
	pdf BalancePDFBuilder,
) *ExportUseCase {
	return &ExportUseCase{
		coopRepo:    coopRepo,
		balance:     balance,
		cashFlow:    cashFlow,
		fees:        fees,
		ratios:      ratios,
		spreadsheet: spreadsheet,
		pdf:         pdf,
	}
}

// Module exporta el módulo indicado en XLSX; el balance general admite además
// format "pdf".
func (uc *ExportUseCase) Module(ctx context.Context, module, cooperativeID string, p finance.Period, format string) (*ExportFile, error) {
	coopName, err := uc.cooperativeName(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}

	switch module {
	case entity.ModuleBalanceSheet:
		report, err := uc.balance.Get(ctx, cooperativeID, p)
		if err != nil {
			return nil, err
		}
		if format == "pdf" {
			content, err := uc.pdf.BalanceSheet(coopName, p, report)
			if err != nil {
				return nil, fmt.Errorf("exportar balance PDF: %w", err)
			}
			return &ExportFile{
				FileName:    exportFileName("balance-general", p, "pdf"),
				ContentType: ContentTypePDF,
				Content:     content,
			}, nil
		}
		content, err := uc.spreadsheet.BalanceSheet(coopName, p, report)
		if err != nil {
			return nil, fmt.Errorf("exportar balance XLSX: %w", err)
		}
		return &ExportFile{
			FileName:    exportFileName("balance-general", p, "xlsx"),
			ContentType: ContentTypeXLSX,
			Content:     content,
		}, nil

	case entity.ModuleCashFlow:
		report, err := uc.cashFlow.Get(ctx, cooperativeID, p)
		if err != nil {
			return nil, err
		}
		content, err := uc.spreadsheet.CashFlow(coopName, p, report)
		if err != nil {
			return nil, fmt.Errorf("exportar flujo de caja: %w", err)
		}
		return &ExportFile{
			FileName:    exportFileName("flujo-de-caja", p, "xlsx"),
			ContentType: ContentTypeXLSX,
			Content:     content,
		}, nil

	case entity.ModuleMembershipFees:
		report, err := uc.fees.Get(ctx, cooperativeID, p, "", "")
		if err != nil {
			return nil, err
		}
		content, err := uc.spreadsheet.MembershipFees(coopName, p, report)
		if err != nil {
			return nil, fmt.Errorf("exportar aportes: %w", err)
		}
		return &ExportFile{
			FileName:    exportFileName("aportes", p, "xlsx"),
			ContentType: ContentTypeXLSX,
			Content:     content,
		}, nil

	case entity.ModuleRatios:
		ratios, err := uc.ratios.Get(ctx, cooperativeID, p)
		if err != nil {
			return nil, err
		}
		content, err := uc.spreadsheet.Ratios(coopName, p, ratios)
		if err != nil {
			return nil, fmt.Errorf("exportar indicadores: %w", err)
		}
		return &ExportFile{
			FileName:    exportFileName("indicadores", p, "xlsx"),
			ContentType: ContentTypeXLSX,
			Content:     content,
		}, nil
	}

	return nil, fmt.Errorf("%w: módulo %q", domain.ErrInvalidInput, module)
}

// FullData arma el libro completo con una hoja por módulo para
// GET /api/settings/data/export.
func (uc *ExportUseCase) FullData(ctx context.Context, cooperativeID string, p finance.Period) (*ExportFile, error) {
	coopName, err := uc.cooperativeName(ctx, cooperativeID)
	if err != nil {
		return nil, err
	}
	balance, err := uc.balance.Get(ctx, cooperativeID, p)
	if err != nil {
		return nil, err
	}
	cashFlow, err := uc.cashFlow.Get(ctx, cooperativeID, p)
	if err != nil {
		return nil, err
	}
	fees, err := uc.fees.Get(ctx, cooperativeID, p, "", "")
	if err != nil {
		return nil, err
	}
	ratios, err := uc.ratios.Get(ctx, cooperativeID, p)
	if err != nil {
		return nil, err
	}
	content, err := uc.spreadsheet.FullWorkbook(coopName, p, balance, cashFlow, fees, ratios)
	if err != nil {
		return nil, fmt.Errorf("exportación completa: %w", err)
	}
	return &ExportFile{
		FileName:    exportFileName("datos-completos", p, "xlsx"),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

func (uc *ExportUseCase) cooperativeName(ctx context.Context, cooperativeID string) (string, error) {
	coop, err := uc.coopRepo.GetByID(ctx, cooperativeID)
	if err != nil {
		return "", err
	}
	if coop == nil {
		return "", domain.ErrNotFound
	}
	return coop.Name, nil
}

func exportFileName(prefix string, p finance.Period, ext string) string {
	return fmt.Sprintf("%s-%d-%02d.%s", prefix, p.Year, p.Month, ext)
}
