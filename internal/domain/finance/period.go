// Package finance contiene la lógica de dominio financiero que no depende de
// infraestructura: períodos contables, cuadre del balance, tasa de cobranza y
// tendencias de indicadores.
package finance

import (
	"fmt"
	"time"
)

// Period es la ventana de reporte (año, mes) seleccionada para visualización.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1..12
}

// Valid indica si el período tiene un mes en rango y un año razonable.
func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= 2000 && p.Year <= 2100
}

// Previous devuelve el período inmediatamente anterior.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// nombres de mes en español, el locale de despliegue de la plataforma.
var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Format devuelve la etiqueta legible del período, ej: "Marzo 2026".
func (p Period) Format() string {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Sprintf("%d-%02d", p.Year, p.Month)
	}
	return fmt.Sprintf("%s %d", monthNames[p.Month-1], p.Year)
}

// LastPeriods genera los últimos n períodos mensuales terminando en el mes de
// referencia, en orden descendente (índice 0 = mes actual).
func LastPeriods(ref time.Time, n int) []Period {
	periods := make([]Period, 0, n)
	y, m := ref.Year(), int(ref.Month())
	for i := 0; i < n; i++ {
		periods = append(periods, Period{Year: y, Month: m})
		m--
		if m == 0 {
			m = 12
			y--
		}
	}
	return periods
}
