package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// FinancialService reportes financieros del dashboard: KPIs, balance, flujo
// de caja, aportes, indicadores y exportaciones.
type FinancialService struct {
	c *Client
}

// ReportQuery parámetros comunes de los reportes: cooperativa y período.
type ReportQuery struct {
	CooperativeID string
	Year          int
	Month         int
}

func (q ReportQuery) values() url.Values {
	v := url.Values{}
	if q.CooperativeID != "" {
		v.Set("cooperativeId", q.CooperativeID)
	}
	if q.Year != 0 {
		v.Set("year", strconv.Itoa(q.Year))
	}
	if q.Month != 0 {
		v.Set("month", strconv.Itoa(q.Month))
	}
	return v
}

// KPIs devuelve las métricas del dashboard para el período.
func (s *FinancialService) KPIs(ctx context.Context, q ReportQuery) ([]KPI, error) {
	var out []KPI
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/dashboard/kpis", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BalanceSheet devuelve el balance general del período.
func (s *FinancialService) BalanceSheet(ctx context.Context, q ReportQuery) (*BalanceSheet, error) {
	var out BalanceSheet
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/balance-sheet", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CashFlow devuelve el flujo de caja del período.
func (s *FinancialService) CashFlow(ctx context.Context, q ReportQuery) (*CashFlow, error) {
	var out CashFlow
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/cash-flow", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CashFlowHistory devuelve la serie de los últimos months meses.
func (s *FinancialService) CashFlowHistory(ctx context.Context, q ReportQuery, months int) ([]CashFlowHistoryItem, error) {
	v := q.values()
	if months > 0 {
		v.Set("months", strconv.Itoa(months))
	}
	var out []CashFlowHistoryItem
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/cash-flow/history", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MembershipFees devuelve los aportes del período, con filtros opcionales de
// búsqueda por socio y estado (up-to-date | with-debt).
func (s *FinancialService) MembershipFees(ctx context.Context, q ReportQuery, search, status string) (*Fees, error) {
	v := q.values()
	if search != "" {
		v.Set("search", search)
	}
	if status != "" {
		v.Set("status", status)
	}
	var out Fees
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/membership-fees", v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyFees devuelve los aportes del socio autenticado.
func (s *FinancialService) MyFees(ctx context.Context, limit int) ([]Fee, error) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out []Fee
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/membership-fees/me", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ratios devuelve los indicadores financieros del período con su tendencia.
func (s *FinancialService) Ratios(ctx context.Context, q ReportQuery) ([]Ratio, error) {
	var out []Ratio
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/ratios", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RatiosHistory devuelve los indicadores con su histórico de months meses.
func (s *FinancialService) RatiosHistory(ctx context.Context, q ReportQuery, months int) ([]Ratio, error) {
	v := q.values()
	if months > 0 {
		v.Set("months", strconv.Itoa(months))
	}
	var out []Ratio
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/ratios/history", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Export descarga la exportación binaria de un módulo. format es "xlsx" para
// todos; balance-sheet acepta además "pdf".
func (s *FinancialService) Export(ctx context.Context, module string, q ReportQuery, format string) (*Blob, error) {
	v := q.values()
	if format != "" {
		v.Set("format", format)
	}
	return s.c.doBlob(ctx, "/api/"+module+"/export", v)
}
