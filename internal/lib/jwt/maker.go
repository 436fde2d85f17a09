// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Токен подписывается секретным ключом алгоритмом HS256 и несёт
// идентификатор пользователя, имя и роль. Валидность определяется
// только подписью и сроком действия, список отзыва не ведётся.
package jwt

import (
	"time"
)

// Maker описывает интерфейс выпуска и разбора токенов доступа.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с заданной ролью.
	GenerateToken(username, role, userUID string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на основе секретного ключа и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт новый MakerImpl с указанным секретом и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
