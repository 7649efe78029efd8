package dto

import "time"

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	CooperativeID string     `json:"cooperativeId,omitempty"`
	RUT           string     `json:"rut,omitempty"`
	Status        string     `json:"status"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CreateUserRequest alta de usuario por un administrador. Si Password viene
// vacío se genera una contraseña temporal y se devuelve una única vez.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin | socio
	RUT      string `json:"rut,omitempty"`
	Password string `json:"password,omitempty"`
}

// CreateUserResponse usuario creado, con la contraseña temporal si aplica.
type CreateUserResponse struct {
	User              UserResponse `json:"user"`
	TemporaryPassword string       `json:"temporaryPassword,omitempty"`
}

// ChangeRoleRequest cambio de rol de un usuario.
type ChangeRoleRequest struct {
	Role string `json:"role"` // admin | socio
}

// ChangeStatusRequest activación/desactivación de un usuario.
type ChangeStatusRequest struct {
	Status string `json:"status"` // active | inactive
}

// ResetPasswordResponse contraseña temporal generada para el usuario.
type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporaryPassword"`
}
