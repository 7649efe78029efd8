package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleSocio = "socio"
)

// Estados válidos para User.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User representa un usuario de la plataforma (pertenece a una Cooperative).
// Los socios sólo ven sus propios aportes; los admin administran la cooperativa.
type User struct {
	ID            string
	CooperativeID string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          string // admin, socio
	RUT           string // identificador tributario del socio (opcional)
	Status        string // active, inactive
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
