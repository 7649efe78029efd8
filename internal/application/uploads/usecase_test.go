package uploads_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopfondos/coopfondos-api/internal/application/uploads"
	"github.com/coopfondos/coopfondos-api/internal/domain"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakePeriodRepo implementa los cuatro puertos de período con contadores de
// llamadas; sirve de BalanceRepository y compañía vía embedding selectivo.
type fakePeriodRepo struct {
	hasPeriod bool
	inserted  int
	replaced  int
}

func (r *fakePeriodRepo) HasPeriod(_ context.Context, _ string, _, _ int) (bool, error) {
	return r.hasPeriod, nil
}

type fakeBalanceRepo struct{ fakePeriodRepo }

func (r *fakeBalanceRepo) ListByPeriod(_ context.Context, _ string, _, _ int) ([]*entity.BalanceEntry, error) {
	return nil, nil
}
func (r *fakeBalanceRepo) InsertPeriod(_ context.Context, _ string, _, _ int, entries []*entity.BalanceEntry) error {
	r.inserted += len(entries)
	return nil
}
func (r *fakeBalanceRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, entries []*entity.BalanceEntry) error {
	r.replaced += len(entries)
	return nil
}

type fakeCashFlowRepo struct{ fakePeriodRepo }

func (r *fakeCashFlowRepo) ListByPeriod(_ context.Context, _ string, _, _ int) ([]*entity.CashFlowEntry, error) {
	return nil, nil
}
func (r *fakeCashFlowRepo) InsertPeriod(_ context.Context, _ string, _, _ int, entries []*entity.CashFlowEntry) error {
	r.inserted += len(entries)
	return nil
}
func (r *fakeCashFlowRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, entries []*entity.CashFlowEntry) error {
	r.replaced += len(entries)
	return nil
}

type fakeFeeRepo struct{ fakePeriodRepo }

func (r *fakeFeeRepo) ListByPeriod(_ context.Context, _ string, _, _ int) ([]*entity.MembershipFee, error) {
	return nil, nil
}
func (r *fakeFeeRepo) ListByMember(_ context.Context, _, _ string, _ int) ([]*entity.MembershipFee, error) {
	return nil, nil
}
func (r *fakeFeeRepo) InsertPeriod(_ context.Context, _ string, _, _ int, fees []*entity.MembershipFee) error {
	r.inserted += len(fees)
	return nil
}
func (r *fakeFeeRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, fees []*entity.MembershipFee) error {
	r.replaced += len(fees)
	return nil
}
func (r *fakeFeeRepo) MemberIDsWithDebt(_ context.Context, _ string, _, _ int) ([]string, error) {
	return nil, nil
}

type fakeRatioRepo struct{ fakePeriodRepo }

func (r *fakeRatioRepo) ListByPeriod(_ context.Context, _ string, _, _ int) ([]*entity.FinancialRatio, error) {
	return nil, nil
}
func (r *fakeRatioRepo) InsertPeriod(_ context.Context, _ string, _, _ int, ratios []*entity.FinancialRatio) error {
	r.inserted += len(ratios)
	return nil
}
func (r *fakeRatioRepo) ReplacePeriod(_ context.Context, _ string, _, _ int, ratios []*entity.FinancialRatio) error {
	r.replaced += len(ratios)
	return nil
}

type fakeUploadRepo struct {
	records []*entity.UploadRecord
}

func (r *fakeUploadRepo) Create(_ context.Context, rec *entity.UploadRecord) error {
	r.records = append(r.records, rec)
	return nil
}
func (r *fakeUploadRepo) History(_ context.Context, _ string, _ int) ([]*entity.UploadRecord, error) {
	return r.records, nil
}
func (r *fakeUploadRepo) LatestByModule(_ context.Context, _ string) (map[string]*entity.UploadRecord, error) {
	return nil, nil
}

type fakeActivityRepo struct{ entries []*entity.ActivityLog }

func (r *fakeActivityRepo) Log(_ context.Context, e *entity.ActivityLog) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeActivityRepo) ListByUser(_ context.Context, _ string, _ int) ([]*entity.ActivityLog, error) {
	return r.entries, nil
}

// fakeParser devuelve un resultado fijo o un error.
type fakeParser struct {
	data *uploads.ParsedData
	err  error
}

func (p *fakeParser) Parse(_, _ string, _ []byte) (*uploads.ParsedData, error) {
	return p.data, p.err
}

type fixture struct {
	uc       *uploads.UploadUseCase
	balance  *fakeBalanceRepo
	uploads  *fakeUploadRepo
	activity *fakeActivityRepo
}

func newFixture(parser uploads.Parser) *fixture {
	balance := &fakeBalanceRepo{}
	uploadRepo := &fakeUploadRepo{}
	activity := &fakeActivityRepo{}
	uc := uploads.NewUploadUseCase(
		balance, &fakeCashFlowRepo{}, &fakeFeeRepo{}, &fakeRatioRepo{},
		uploadRepo, activity, parser,
	)
	return &fixture{uc: uc, balance: balance, uploads: uploadRepo, activity: activity}
}

func balanceRows(n int, skipped int) *uploads.ParsedData {
	rows := make([]*entity.BalanceEntry, n)
	for i := range rows {
		rows[i] = &entity.BalanceEntry{
			AccountCode: "1.1",
			AccountName: "Caja",
			Category:    entity.CategoryAssets,
			FinalDebit:  decimal.NewFromInt(1000),
		}
	}
	return &uploads.ParsedData{Balance: rows, Skipped: skipped}
}

func importInput(overwrite bool) uploads.ImportInput {
	return uploads.ImportInput{
		CooperativeID: "coop-1",
		UserID:        "user-1",
		UserName:      "Carla",
		Module:        entity.ModuleBalanceSheet,
		FileName:      "balance.csv",
		Year:          2026,
		Month:         8,
		Overwrite:     overwrite,
		Content:       []byte("cuenta;nombre;categoria"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Import
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_PeriodoNuevoInserta(t *testing.T) {
	f := newFixture(&fakeParser{data: balanceRows(3, 0)})

	out, err := f.uc.Import(context.Background(), importInput(false))
	require.NoError(t, err)

	assert.Equal(t, entity.UploadSuccess, out.Status)
	assert.Equal(t, 3, out.RecordsCount)
	assert.Equal(t, 3, f.balance.inserted)
	assert.Zero(t, f.balance.replaced)

	require.Len(t, f.uploads.records, 1, "toda carga queda en el historial")
	assert.Equal(t, entity.UploadSuccess, f.uploads.records[0].Status)
	require.Len(t, f.activity.entries, 1, "la carga exitosa se registra en la bitácora")
}

func TestImport_PeriodoConDatosSinOverwrite_Corta(t *testing.T) {
	f := newFixture(&fakeParser{data: balanceRows(3, 0)})
	f.balance.hasPeriod = true

	_, err := f.uc.Import(context.Background(), importInput(false))
	assert.ErrorIs(t, err, domain.ErrPeriodHasData)
	assert.Zero(t, f.balance.inserted, "sin confirmación no se toca nada")
	assert.Zero(t, f.balance.replaced)
	assert.Empty(t, f.uploads.records, "el rechazo por confirmación pendiente no ensucia el historial")
}

func TestImport_PeriodoConDatosConOverwrite_Reemplaza(t *testing.T) {
	f := newFixture(&fakeParser{data: balanceRows(2, 0)})
	f.balance.hasPeriod = true

	out, err := f.uc.Import(context.Background(), importInput(true))
	require.NoError(t, err)
	assert.Equal(t, entity.UploadSuccess, out.Status)
	assert.Equal(t, 2, f.balance.replaced)
	assert.Zero(t, f.balance.inserted)
}

func TestImport_FilasDescartadas_EstadoParcial(t *testing.T) {
	f := newFixture(&fakeParser{data: balanceRows(5, 2)})

	out, err := f.uc.Import(context.Background(), importInput(false))
	require.NoError(t, err)
	assert.Equal(t, entity.UploadPartial, out.Status)
	assert.Contains(t, out.Message, "2 filas descartadas")
}

func TestImport_ParserFalla_RegistraCargaFallida(t *testing.T) {
	f := newFixture(&fakeParser{err: errors.New("encabezado no reconocido")})

	_, err := f.uc.Import(context.Background(), importInput(false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.Len(t, f.uploads.records, 1)
	assert.Equal(t, entity.UploadFailed, f.uploads.records[0].Status)
	assert.Contains(t, f.uploads.records[0].Message, "encabezado no reconocido")
}

func TestImport_ExtensionNoSoportada(t *testing.T) {
	f := newFixture(&fakeParser{data: balanceRows(1, 0)})
	in := importInput(false)
	in.FileName = "balance.xls" // el heredado solo se acepta en el cliente

	_, err := f.uc.Import(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)
}

func TestImport_ModuloDesconocido(t *testing.T) {
	f := newFixture(&fakeParser{data: balanceRows(1, 0)})
	in := importInput(false)
	in.Module = "presupuesto"

	_, err := f.uc.Import(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_PeriodoInvalido(t *testing.T) {
	f := newFixture(&fakeParser{data: balanceRows(1, 0)})
	in := importInput(false)
	in.Month = 13

	_, err := f.uc.Import(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ArchivoSinFilasValidas(t *testing.T) {
	f := newFixture(&fakeParser{data: &uploads.ParsedData{Skipped: 4}})

	_, err := f.uc.Import(context.Background(), importInput(false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Len(t, f.uploads.records, 1)
	assert.Equal(t, entity.UploadFailed, f.uploads.records[0].Status)
}
