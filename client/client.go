// Package client es el SDK tipado de la API de CoopFondos: inyección de
// bearer token, sobres JSON {success, data, message, error}, respuestas
// binarias (exportaciones XLSX/PDF) y estado de sesión/cooperativa/período
// para construir interfaces encima.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// APIError error devuelto por la API, con el mensaje del sobre cuando existe.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Blob respuesta binaria de un endpoint de exportación.
type Blob struct {
	FileName    string
	ContentType string
	Content     []byte
}

// envelope sobre estándar de la API; Data se difiere para parsearla en el
// tipo concreto de cada operación.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Client cliente HTTP de la API. El token vive en memoria y se sincroniza
// con el TokenStore únicamente a través de SetToken.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore

	mu    sync.RWMutex
	token string

	Auth          *AuthService
	Cooperatives  *CooperativeService
	Financial     *FinancialService
	Upload        *UploadService
	Users         *UserService
	Notifications *NotificationService
	Settings      *SettingsService
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client subyacente.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New construye el cliente contra baseURL, recuperando el token persistido
// del store si existe.
func New(baseURL string, store TokenStore, opts ...Option) (*Client, error) {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("cargando token persistido: %w", err)
	}
	c.token = token

	c.Auth = &AuthService{c: c}
	c.Cooperatives = &CooperativeService{c: c}
	c.Financial = &FinancialService{c: c}
	c.Upload = &UploadService{c: c}
	c.Users = &UserService{c: c}
	c.Notifications = &NotificationService{c: c}
	c.Settings = &SettingsService{c: c}
	return c, nil
}

// Token devuelve el bearer token actual ("" si no hay sesión).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken es el único mutador del token: actualiza memoria y store en el
// mismo paso. Token vacío limpia ambos.
func (c *Client) SetToken(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if token == "" {
		return c.store.Clear()
	}
	return c.store.Save(token)
}

// ── Transporte ────────────────────────────────────────────────────────────────

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON ejecuta una petición con cuerpo y respuesta JSON; out recibe el
// campo data del sobre (puede ser nil si no interesa).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, path, query, reader, contentType)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return parseJSONResponse(resp, out)
}

// doBlob ejecuta una petición que espera una respuesta binaria. Si el servidor
// responde JSON (caso de error), se parsea el sobre y se devuelve el APIError.
func (c *Client) doBlob(ctx context.Context, path string, query url.Values) (*Blob, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if isJSONResponse(resp) {
		// Un export nunca responde JSON salvo para reportar un error.
		if err := parseJSONResponse(resp, nil); err != nil {
			return nil, err
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP error %d", resp.StatusCode)}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP error %d", resp.StatusCode)}
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Blob{
		FileName:    fileNameFromDisposition(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// doMultipart envía un formulario multipart y parsea el sobre JSON de vuelta.
func (c *Client) doMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, fileContent []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(fileContent); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return parseJSONResponse(resp, out)
}

// parseJSONResponse decodifica el sobre y materializa data en out. En error
// HTTP usa el mensaje del sobre, con "HTTP error <status>" como respaldo.
func parseJSONResponse(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 || (decodeErr == nil && !env.Success && env.Error != "") {
		msg := fmt.Sprintf("HTTP error %d", resp.StatusCode)
		if decodeErr == nil && env.Error != "" {
			msg = env.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("respuesta JSON inválida: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("parseando data de la respuesta: %w", err)
		}
	}
	return nil
}

func isJSONResponse(resp *http.Response) bool {
	ct := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// fileNameFromDisposition extrae filename de un header Content-Disposition.
func fileNameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
