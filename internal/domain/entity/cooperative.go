package entity

import "time"

// Cooperative es la organización (tenant) cuyas finanzas se gestionan.
type Cooperative struct {
	ID        string
	Name      string
	RUC       string // registro único de contribuyente (opcional)
	Type      string // ahorro-credito, vivienda, consumo, produccion, servicios, otra
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
