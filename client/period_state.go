package client

import (
	"fmt"
	"sync"
	"time"
)

// periodCount cantidad de períodos del selector.
const periodCount = 24

// Period ventana de reporte (año, mes).
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1..12
}

// nombres de mes en español, el locale de despliegue.
var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Label devuelve la etiqueta "Mes Año", ej: "Marzo 2026".
func (p Period) Label() string {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Sprintf("%d-%02d", p.Year, p.Month)
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
}

// PeriodState selector de período: lista estática de los últimos 24 meses
// terminando en el mes actual, generada una sola vez en la construcción.
// La selección por defecto es el índice 0 (mes actual).
type PeriodState struct {
	periods []Period

	mu       sync.RWMutex
	selected int
}

// NewPeriodState construye el selector con referencia now.
func NewPeriodState(now time.Time) *PeriodState {
	periods := make([]Period, 0, periodCount)
	y, m := now.Year(), int(now.Month())
	for i := 0; i < periodCount; i++ {
		periods = append(periods, Period{Year: y, Month: m})
		m--
		if m == 0 {
			m = 12
			y--
		}
	}
	return &PeriodState{periods: periods}
}

// Periods devuelve la lista completa, del mes actual hacia atrás.
func (ps *PeriodState) Periods() []Period {
	return ps.periods
}

// Select cambia la selección por índice; fuera de rango no cambia nada y
// devuelve false.
func (ps *PeriodState) Select(index int) bool {
	if index < 0 || index >= len(ps.periods) {
		return false
	}
	ps.mu.Lock()
	ps.selected = index
	ps.mu.Unlock()
	return true
}

// Selected devuelve el período activo.
func (ps *PeriodState) Selected() Period {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.periods[ps.selected]
}
