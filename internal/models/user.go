// Package models содержит доменные модели сервиса: пользователя,
// сессионную идентичность и результат анализа новости.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хеш пароля
	CreatedAt    time.Time // Дата регистрации
}

// Identity — данные, привязанные к сессионному токену.
type Identity struct {
	Email string `json:"email"`
}

// PublicUser — поля пользователя, которые можно отдавать клиенту.
type PublicUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public возвращает публичное представление пользователя без хеша пароля.
func (u User) Public() PublicUser {
	return PublicUser{Name: u.Name, Email: u.Email}
}
