// Package models содержит доменные структуры маркетплейса:
// пользователей, объявления и вспомогательные типы для приёма
// данных из HTTP-запросов.
package models

import "time"

// Роли пользователей. Право создавать и изменять объявления есть только у vendor.
const (
	RoleVendor = "vendor"
	RoleUser   = "user"
)

// User представляет зарегистрированного пользователя системы.
// PasswordHash наружу не отдаётся никогда.
type User struct {
	UID          string    `json:"id"`       // Уникальный идентификатор
	Username     string    `json:"username"` // Отображаемое имя
	Email        string    `json:"email"`    // Уникальный email
	PasswordHash string    `json:"-"`        // bcrypt-хэш пароля
	Role         string    `json:"role"`     // vendor или user
	CreatedAt    time.Time `json:"created_at"`
}
