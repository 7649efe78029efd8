package entity

import "time"

// Módulos financieros que aceptan carga de archivos.
const (
	ModuleBalanceSheet   = "balance-sheet"
	ModuleCashFlow       = "cash-flow"
	ModuleMembershipFees = "membership-fees"
	ModuleRatios         = "ratios"
)

// Estados del resultado de una carga.
const (
	UploadSuccess = "success"
	UploadPartial = "partial"
	UploadFailed  = "failed"
)

// UploadRecord es el historial de una carga de archivo financiero.
type UploadRecord struct {
	ID            string
	CooperativeID string
	UserID        string
	UserName      string
	Module        string // balance-sheet, cash-flow, membership-fees, ratios
	FileName      string
	Year          int
	Month         int
	Status        string // success, partial, failed
	RecordsCount  int
	Message       string
	CreatedAt     time.Time
}
