package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RolePartner = "partner"
	RoleViewer  = "viewer"
)

// User representa un usuario del sistema. Owner vincula al usuario con un socio (vacío si no es socio).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, partner, viewer
	Owner        Owner
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
