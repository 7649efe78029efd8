package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/coopfondos/coopfondos-api/internal/domain/validate"
)

// UploadService carga de archivos financieros por módulo.
type UploadService struct {
	c *Client
}

// UploadInput archivo y período de una carga.
type UploadInput struct {
	CooperativeID string
	FileName      string
	ContentType   string
	Content       []byte
	Year          int
	Month         int
	Overwrite     bool
}

// Import sube el archivo del módulo indicado. El tipo de archivo se valida
// localmente antes de tocar la red; el servidor vuelve a validar y además
// rechaza .xls.
func (s *UploadService) Import(ctx context.Context, module string, in UploadInput) (*UploadResult, error) {
	if err := validate.UploadFile(in.FileName, in.ContentType); err != nil {
		return nil, err
	}
	if len(in.Content) == 0 {
		return nil, validate.ErrFileEmpty
	}
	fields := map[string]string{
		"year":  strconv.Itoa(in.Year),
		"month": strconv.Itoa(in.Month),
	}
	if in.Overwrite {
		fields["overwrite"] = "true"
	}
	path := "/api/upload/" + module
	if in.CooperativeID != "" {
		path += "?cooperativeId=" + url.QueryEscape(in.CooperativeID)
	}
	var out UploadResult
	if err := s.c.doMultipart(ctx, path, fields, "file", in.FileName, in.Content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History devuelve el historial de cargas de la cooperativa.
func (s *UploadService) History(ctx context.Context, cooperativeID string, limit int) ([]UploadRecord, error) {
	q := url.Values{}
	if cooperativeID != "" {
		q.Set("cooperativeId", cooperativeID)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []UploadRecord
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/upload/history", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Latest devuelve la última carga exitosa por módulo.
func (s *UploadService) Latest(ctx context.Context, cooperativeID string) (map[string]UploadRecord, error) {
	q := url.Values{}
	if cooperativeID != "" {
		q.Set("cooperativeId", cooperativeID)
	}
	var out map[string]UploadRecord
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/upload/latest", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
