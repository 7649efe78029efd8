package client

import (
	"context"
	"net/http"
	"net/url"
)

// UserService administración de usuarios (solo admin).
type UserService struct {
	c *Client
}

func coopQuery(cooperativeID string) url.Values {
	q := url.Values{}
	if cooperativeID != "" {
		q.Set("cooperativeId", cooperativeID)
	}
	return q
}

// List lista los usuarios de la cooperativa; search filtra por nombre o email.
func (s *UserService) List(ctx context.Context, cooperativeID, search string) ([]User, error) {
	q := coopQuery(cooperativeID)
	if search != "" {
		q.Set("search", search)
	}
	var out []User
	if err := s.c.doJSON(ctx, http.MethodGet, "/api/users", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create da de alta un usuario; la contraseña temporal viene una única vez.
func (s *UserService) Create(ctx context.Context, cooperativeID string, in CreateUserInput) (*CreatedUser, error) {
	var out CreatedUser
	if err := s.c.doJSON(ctx, http.MethodPost, "/api/users", coopQuery(cooperativeID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeRole cambia el rol de un usuario (admin | socio).
func (s *UserService) ChangeRole(ctx context.Context, cooperativeID, userID, role string) (*User, error) {
	var out User
	body := map[string]string{"role": role}
	if err := s.c.doJSON(ctx, http.MethodPut, "/api/users/"+userID+"/role", coopQuery(cooperativeID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeStatus activa o desactiva un usuario (active | inactive).
func (s *UserService) ChangeStatus(ctx context.Context, cooperativeID, userID, status string) (*User, error) {
	var out User
	body := map[string]string{"status": status}
	if err := s.c.doJSON(ctx, http.MethodPut, "/api/users/"+userID+"/status", coopQuery(cooperativeID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword genera una contraseña temporal nueva.
func (s *UserService) ResetPassword(ctx context.Context, cooperativeID, userID string) (string, error) {
	var out struct {
		TemporaryPassword string `json:"temporaryPassword"`
	}
	if err := s.c.doJSON(ctx, http.MethodPost, "/api/users/"+userID+"/reset-password", coopQuery(cooperativeID), nil, &out); err != nil {
		return "", err
	}
	return out.TemporaryPassword, nil
}
