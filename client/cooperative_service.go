package client

import (
	"context"
	"net/http"
	"net/url"
)

// CooperativeService selector y ficha de cooperativas.
type CooperativeService struct {
	c *Client
}

// List devuelve las cooperativas visibles para el usuario autenticado.
func (s *CooperativeService) List(ctx context.Context) ([]Cooperative, error) {
	var out []Cooperative
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/cooperatives", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Info devuelve la ficha de la cooperativa. cooperativeID vacío usa la del token.
func (s *CooperativeService) Info(ctx context.Context, cooperativeID string) (*CooperativeInfo, error) {
	q := url.Values{}
	if cooperativeID != "" {
		q.Set("cooperativeId", cooperativeID)
	}
	var out CooperativeInfo
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/cooperatives/info", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInfo actualiza la ficha (solo admin).
func (s *CooperativeService) UpdateInfo(ctx context.Context, cooperativeID string, in UpdateCooperativeInput) (*CooperativeInfo, error) {
	q := url.Values{}
	if cooperativeID != "" {
		q.Set("cooperativeId", cooperativeID)
	}
	var out CooperativeInfo
	if err := s.c.doJSON(ctx, http.MethodPut, "/api/cooperatives/info", q, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
