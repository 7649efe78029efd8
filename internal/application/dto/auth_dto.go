package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT más el perfil del usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	ExpiresIn string       `json:"expiresIn"` // ej. "480m"
}

// RegisterRequest alta de una cooperativa nueva con su usuario administrador.
type RegisterRequest struct {
	CooperativeName string `json:"cooperativeName"`
	CooperativeType string `json:"cooperativeType"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ActivityItem entrada de la bitácora de actividad del usuario.
type ActivityItem struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
