package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleSupervisor  = "supervisor"
	RoleAlmacenista = "almacenista"
)

// User representa un operador del back-office (pertenece a una Unit).
type User struct {
	ID           string
	UnitID       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, supervisor, almacenista
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
