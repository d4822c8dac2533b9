package entity

import "time"

// Roles de usuario.
const (
	RolAdmin  = "admin"
	RolCajero = "cajero"
)

// Usuario representa un usuario del sistema (cajero o administrador).
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string
	Estado       string // "active" | "inactive"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
