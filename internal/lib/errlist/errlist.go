// Package errlist содержит перечень ошибок доменного уровня.
// Сервисы возвращают эти ошибки (обёрнутыми через fmt.Errorf с %w),
// а HTTP-обработчики переводят их в статус-коды через errors.Is.
package errlist

import "errors"

var (
	// ErrInvalidID — идентификатор синтаксически некорректен.
	// Проверяется до обращения к хранилищу, отличается от ErrAdvertNotFound.
	ErrInvalidID = errors.New("invalid identifier format")

	// ErrUserNotFound — пользователь с таким email не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists — email уже занят другим пользователем.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — пароль не совпал с хэшем.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAdvertNotFound — корректный идентификатор, но записи нет.
	ErrAdvertNotFound = errors.New("advert not found")
	// ErrAdvertExists — у владельца уже есть объявление с таким title.
	ErrAdvertExists = errors.New("advert already exists")

	// ErrAccessDenied — отказ по роли или по владению.
	// Наружу уходит одинаковое сообщение, причина не раскрывается.
	ErrAccessDenied = errors.New("access denied")

	// ErrUpstream — сбой внешнего сервиса (медиахостинг, генерация картинок).
	ErrUpstream = errors.New("upstream service failure")
)
