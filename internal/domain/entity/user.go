package entity

import "time"

// Roles predefinidos. Se pueden crear roles adicionales desde la administración.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleConsulta  = "consulta"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // nombre de un Role existente
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role representa un rol asignable a usuarios.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
