package models

import (
	"time"

	"github.com/google/uuid"
)

// Role описывает роль пользователя в системе.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleSupplier    Role = "supplier"
	RoleResponsavel Role = "responsavel"
)

// IsValid сообщает, известна ли роль.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleResponsavel:
		return true
	}
	return false
}

// User представляет пользователя системы.
type User struct {
	ID           uuid.UUID `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Identity - проверенная личность вызывающего (из JWT).
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// RegisterRequest - запрос на регистрацию пользователя.
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginRequest - запрос на аутентификацию пользователя.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
