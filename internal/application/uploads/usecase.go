package uploads

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/coopfondos/coopfondos-api/internal/application/dto"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
	"github.com/coopfondos/coopfondos-api/internal/domain/finance"
	"github.com/coopfondos/coopfondos-api/internal/domain/repository"
)

// ImportInput datos de una carga de archivo financiero.
type ImportInput struct {
	CooperativeID string
	UserID        string
	UserName      string
	Module        string
	FileName      string
	Year          int
	Month         int
	Overwrite     bool
	Content       []byte
}

// UploadUseCase importa archivos financieros por módulo y período.
type UploadUseCase struct {
	balanceRepo  repository.BalanceRepository
	cashFlowRepo repository.CashFlowRepository
	feeRepo      repository.FeeRepository
	ratioRepo    repository.RatioRepository
	uploadRepo   repository.UploadRepository
	activityRepo repository.ActivityRepository
	parser       Parser
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(
	balanceRepo repository.BalanceRepository,
	cashFlowRepo repository.CashFlowRepository,
	feeRepo repository.FeeRepository,
	ratioRepo repository.RatioRepository,
	uploadRepo repository.UploadRepository,
	activityRepo repository.ActivityRepository,
	parser Parser,
) *UploadUseCase {
	return &UploadUseCase{
		balanceRepo:  balanceRepo,
		cashFlowRepo: cashFlowRepo,
		feeRepo:      feeRepo,
		ratioRepo:    ratioRepo,
		uploadRepo:   uploadRepo,
		activityRepo: activityRepo,
		parser:       parser,
	}
}

// extensiones aceptadas por el servidor. El .xls heredado solo se permite en el
// cliente; aquí exigimos formatos que el parser sabe leer.
var serverUploadExts = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// Import valida, parsea y persiste el archivo cargado. Si el período ya tiene
// datos y no se pidió sobrescribir, devuelve domain.ErrPeriodHasData sin tocar
// nada. Solo los intentos que llegaron a parsear un archivo quedan en el
// historial; los rechazos de validación previa y la confirmación pendiente de
// sobrescritura no dejan registro.
func (uc *UploadUseCase) Import(ctx context.Context, in ImportInput) (*dto.UploadResultDTO, error) {
	if !validModule(in.Module) {
		return nil, fmt.Errorf("%w: módulo %q", domain.ErrInvalidInput, in.Module)
	}
	p := finance.Period{Year: in.Year, Month: in.Month}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: período %d-%d", domain.ErrInvalidInput, in.Year, in.Month)
	}
	ext := strings.ToLower(filepath.Ext(in.FileName))
	if !serverUploadExts[ext] {
		return nil, domain.ErrUnsupportedFile
	}
	if len(in.Content) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}

	parsed, err := uc.parser.Parse(in.Module, in.FileName, in.Content)
	if err != nil {
		uc.record(ctx, in, entity.UploadFailed, 0, err.Error())
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	if parsed.Rows() == 0 {
		uc.record(ctx, in, entity.UploadFailed, 0, "el archivo no contiene filas válidas")
		return nil, fmt.Errorf("%w: el archivo no contiene filas válidas", domain.ErrInvalidInput)
	}

	if err := uc.persist(ctx, in, parsed); err != nil {
		if errors.Is(err, domain.ErrPeriodHasData) {
			return nil, err
		}
		uc.record(ctx, in, entity.UploadFailed, 0, "error al guardar los datos")
		return nil, fmt.Errorf("carga: persistir %s: %w", in.Module, err)
	}

	status := entity.UploadSuccess
	message := fmt.Sprintf("Se importaron %d registros", parsed.Rows())
	if parsed.Skipped > 0 {
		status = entity.UploadPartial
		message = fmt.Sprintf("Se importaron %d registros; %d filas descartadas por formato inválido",
			parsed.Rows(), parsed.Skipped)
	}
	uc.record(ctx, in, status, parsed.Rows(), message)
	uc.logActivity(ctx, in)

	return &dto.UploadResultDTO{
		Status:       status,
		Message:      message,
		RecordsCount: parsed.Rows(),
	}, nil
}

// History devuelve las últimas cargas de la cooperativa.
func (uc *UploadUseCase) History(ctx context.Context, cooperativeID string, limit int) ([]dto.UploadRecordDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	records, err := uc.uploadRepo.History(ctx, cooperativeID, limit)
	if err != nil {
		return nil, fmt.Errorf("carga: historial: %w", err)
	}
	out := make([]dto.UploadRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, recordToDTO(r))
	}
	return out, nil
}

// Latest devuelve la última carga exitosa por módulo, para que el dashboard
// muestre qué tan frescos están los datos.
func (uc *UploadUseCase) Latest(ctx context.Context, cooperativeID string) (map[string]dto.UploadRecordDTO, error) {
	latest, err := uc.uploadRepo.LatestByModule(ctx, cooperativeID)
	if err != nil {
		return nil, fmt.Errorf("carga: últimas por módulo: %w", err)
	}
	out := make(map[string]dto.UploadRecordDTO, len(latest))
	for module, r := range latest {
		out[module] = recordToDTO(r)
	}
	return out, nil
}

func (uc *UploadUseCase) persist(ctx context.Context, in ImportInput, parsed *ParsedData) error {
	type tableRepo interface {
		HasPeriod(ctx context.Context, cooperativeID string, year, month int) (bool, error)
	}
	var repo tableRepo
	switch in.Module {
	case entity.ModuleBalanceSheet:
		repo = uc.balanceRepo
	case entity.ModuleCashFlow:
		repo = uc.cashFlowRepo
	case entity.ModuleMembershipFees:
		repo = uc.feeRepo
	case entity.ModuleRatios:
		repo = uc.ratioRepo
	}

	exists, err := repo.HasPeriod(ctx, in.CooperativeID, in.Year, in.Month)
	if err != nil {
		return err
	}
	if exists && !in.Overwrite {
		return domain.ErrPeriodHasData
	}

	switch in.Module {
	case entity.ModuleBalanceSheet:
		uc.stampBalance(in, parsed.Balance)
		if exists {
			return uc.balanceRepo.ReplacePeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.Balance)
		}
		return uc.balanceRepo.InsertPeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.Balance)
	case entity.ModuleCashFlow:
		uc.stampCashFlow(in, parsed.CashFlow)
		if exists {
			return uc.cashFlowRepo.ReplacePeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.CashFlow)
		}
		return uc.cashFlowRepo.InsertPeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.CashFlow)
	case entity.ModuleMembershipFees:
		uc.stampFees(in, parsed.Fees)
		if exists {
			return uc.feeRepo.ReplacePeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.Fees)
		}
		return uc.feeRepo.InsertPeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.Fees)
	case entity.ModuleRatios:
		uc.stampRatios(in, parsed.Ratios)
		if exists {
			return uc.ratioRepo.ReplacePeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.Ratios)
		}
		return uc.ratioRepo.InsertPeriod(ctx, in.CooperativeID, in.Year, in.Month, parsed.Ratios)
	}
	return fmt.Errorf("%w: módulo %q", domain.ErrInvalidInput, in.Module)
}

func (uc *UploadUseCase) stampBalance(in ImportInput, rows []*entity.BalanceEntry) {
	for _, r := range rows {
		r.ID = uuid.New().String()
		r.CooperativeID = in.CooperativeID
		r.Year, r.Month = in.Year, in.Month
		r.CreatedAt = time.Now()
	}
}

func (uc *UploadUseCase) stampCashFlow(in ImportInput, rows []*entity.CashFlowEntry) {
	for _, r := range rows {
		r.ID = uuid.New().String()
		r.CooperativeID = in.CooperativeID
		r.Year, r.Month = in.Year, in.Month
		r.CreatedAt = time.Now()
	}
}

func (uc *UploadUseCase) stampFees(in ImportInput, rows []*entity.MembershipFee) {
	for _, r := range rows {
		r.ID = uuid.New().String()
		r.CooperativeID = in.CooperativeID
		r.Year, r.Month = in.Year, in.Month
		r.CreatedAt = time.Now()
	}
}

func (uc *UploadUseCase) stampRatios(in ImportInput, rows []*entity.FinancialRatio) {
	for _, r := range rows {
		r.ID = uuid.New().String()
		r.CooperativeID = in.CooperativeID
		r.Year, r.Month = in.Year, in.Month
		r.CreatedAt = time.Now()
	}
}

// record guarda la entrada de historial; si falla solo se registra en el log
// para no ocultar el resultado de la carga.
func (uc *UploadUseCase) record(ctx context.Context, in ImportInput, status string, count int, message string) {
	rec := &entity.UploadRecord{
		ID:            uuid.New().String(),
		CooperativeID: in.CooperativeID,
		UserID:        in.UserID,
		UserName:      in.UserName,
		Module:        in.Module,
		FileName:      in.FileName,
		Year:          in.Year,
		Month:         in.Month,
		Status:        status,
		RecordsCount:  count,
		Message:       message,
		CreatedAt:     time.Now(),
	}
	if err := uc.uploadRepo.Create(ctx, rec); err != nil {
		log.Warn().Err(err).Str("module", in.Module).Msg("no se pudo registrar el historial de carga")
	}
}

func (uc *UploadUseCase) logActivity(ctx context.Context, in ImportInput) {
	if uc.activityRepo == nil {
		return
	}
	entry := &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Action:    entity.ActionUpload,
		Details:   fmt.Sprintf("Carga de %s: %s (%d-%02d)", in.Module, in.FileName, in.Year, in.Month),
		CreatedAt: time.Now(),
	}
	if err := uc.activityRepo.Log(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("no se pudo registrar la actividad de carga")
	}
}

func validModule(module string) bool {
	switch module {
	case entity.ModuleBalanceSheet, entity.ModuleCashFlow, entity.ModuleMembershipFees, entity.ModuleRatios:
		return true
	}
	return false
}

func recordToDTO(r *entity.UploadRecord) dto.UploadRecordDTO {
	return dto.UploadRecordDTO{
		ID:           r.ID,
		Module:       r.Module,
		FileName:     r.FileName,
		UserName:     r.UserName,
		Year:         r.Year,
		Month:        r.Month,
		Status:       r.Status,
		RecordsCount: r.RecordsCount,
		Message:      r.Message,
		CreatedAt:    r.CreatedAt,
	}
}
