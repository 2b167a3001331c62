// Package jwt реализует выпуск и проверку сессионных JWT токенов.
//
// Токен несёт идентификатор пользователя и абсолютный срок действия,
// подписывается процессным секретом по HS256. Просроченный токен
// отличим от повреждённого, чтобы клиент получил точную причину отказа.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserID               int64 `json:"user_id"` // Идентификатор пользователя
	jwt.RegisteredClaims       // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для выпуска и проверки сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя.
	GenerateToken(userID int64) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	// При просрочке возвращает ErrTokenExpired, при прочих дефектах —
	// ErrTokenInvalid.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
