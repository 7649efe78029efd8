package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/coopfondos/coopfondos-api/internal/domain/validate"
)

// AuthService operaciones de autenticación y perfil.
type AuthService struct {
	c *Client
}

// Login autentica y persiste el token. Valida correo y contraseña antes de
// tocar la red; el servidor repite la validación de todos modos.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, validate.ErrPasswordTooShort
	}
	var out LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := s.c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	if err := s.c.SetToken(out.Token); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register da de alta una cooperativa con su administrador. Valida la política
// de contraseñas antes de la llamada.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if err := validate.Email(in.Email); err != nil {
		return err
	}
	if err := validate.Password(in.Password); err != nil {
		return err
	}
	return s.c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, in, nil)
}

// Logout cierra la sesión en el servidor con el mejor esfuerzo; el token
// local se limpia incluso si la llamada falla.
func (s *AuthService) Logout(ctx context.Context) error {
	serverErr := s.c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	if err := s.c.SetToken(""); err != nil {
		return err
	}
	return serverErr
}

// Me devuelve el perfil del usuario del token actual.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var out User
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if err := validate.Password(newPassword); err != nil {
		return err
	}
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return s.c.doJSON(ctx, http.MethodPut, "/api/auth/me/password", nil, body, nil)
}

// Activity devuelve la bitácora reciente del usuario.
func (s *AuthService) Activity(ctx context.Context, limit int) ([]ActivityItem, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []ActivityItem
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/auth/me/activity", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
