// Package services содержит бизнес-логику регистрации и аутентификации пользователей.
package services

import (
	"context"
	"fmt"

	"github.com/vetrovdenis/ad-marketplace/internal/lib/errlist"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/jwt"
	"github.com/vetrovdenis/ad-marketplace/internal/lib/password"
	"github.com/vetrovdenis/ad-marketplace/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его идентификатор.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// ExistsUserByEmail проверяет, занят ли email.
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)

	// GetUserByEmail возвращает пользователя по email или errlist.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Пустая роль трактуется как "user". Занятый email — errlist.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword, role string) (string, error) {
	const op = "services.auth.Register"

	if role == "" {
		role = models.RoleUser
	}

	exists, err := s.users.ExistsUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w", op, errlist.ErrUserExists)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль пользователя по email и выпускает токен доступа.
// Неизвестный email — errlist.ErrUserNotFound, неверный пароль —
// errlist.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, errlist.ErrInvalidCredentials)
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return token, user.Role, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims.
// Обращений к хранилищу нет: роль берётся из самого токена.
func (s *AuthService) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(tokenStr)
}
