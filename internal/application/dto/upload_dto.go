package dto

import "time"

// UploadResultDTO resultado de una carga de archivo financiero.
type UploadResultDTO struct {
	Status       string `json:"status"` // success | partial | failed
	Message      string `json:"message"`
	RecordsCount int    `json:"recordsCount"`
}

// UploadRecordDTO entrada del historial de cargas.
type UploadRecordDTO struct {
	ID           string    `json:"id"`
	Module       string    `json:"module"`
	FileName     string    `json:"fileName"`
	UserName     string    `json:"userName"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Status       string    `json:"status"`
	RecordsCount int       `json:"recordsCount"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
