package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
	RoleMecanico = "mecanico"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del taller con su perfil (nombre y rol).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, vendedor, mecanico
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile perfil visible del usuario autenticado.
type Profile struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Profile devuelve el perfil del usuario.
func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Role: u.Role}
}
