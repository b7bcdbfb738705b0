// Package jwt реализует выпуск и разбор пары JWT токенов (access и refresh).
//
// Maker определяет интерфейс для создания и проверки токенов, MakerImpl —
// реализацию на HS256 с общим секретом сервера.
package jwt

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Сроки жизни токенов по умолчанию.
const (
	DefaultAccessTTL  = 10 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GeneratePair выпускает access и refresh токены для actor.
	GeneratePair(actor *models.Actor) (TokenPair, error)
	// ParseToken проверяет подпись, срок действия и тип токена.
	ParseToken(tokenStr string, tokenType TokenType) (*CustomClaims, error)
}

// TokenPair — пара выпущенных токенов.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токенов.
type MakerImpl struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTMaker создаёт MakerImpl. Пустой секрет считается ошибкой конфигурации,
// нулевые TTL заменяются значениями по умолчанию.
func NewJWTMaker(secretKey string, accessTTL, refreshTTL time.Duration) (*MakerImpl, error) {
	const op = "jwt.NewJWTMaker"
	if secretKey == "" {
		return nil, fmt.Errorf("%s: %w", op, apperr.Configuration("APP_PRIVATE_KEY is not set"))
	}
	if accessTTL == 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL == 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}
