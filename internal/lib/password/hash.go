// Package password реализует хеширование и проверку паролей с «перцем».
//
// Пароль сначала подписывается HMAC-SHA256 с общим для сервера секретом (pepper),
// результат в base64 передаётся в bcrypt с собственной солью на каждый пароль.
// Вход bcrypt всегда 44 байта, поэтому ограничение bcrypt в 72 байта
// не зависит ни от длины пароля, ни от длины перца.
package password

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
)

// DefaultCost — стоимость bcrypt по умолчанию.
const DefaultCost = 10

// Hasher хеширует и проверяет пароли с заданным перцем.
type Hasher struct {
	pepper []byte
	cost   int
}

// NewHasher создаёт Hasher. Пустой перец считается ошибкой конфигурации.
// Стоимость вне допустимого для bcrypt диапазона заменяется на DefaultCost.
func NewHasher(pepper string, cost int) (*Hasher, error) {
	const op = "password.NewHasher"
	if pepper == "" {
		return nil, fmt.Errorf("%s: %w", op, apperr.Configuration("PASSWORD_PEPPER is not set"))
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{pepper: []byte(pepper), cost: cost}, nil
}

// Hash возвращает bcrypt‑хэш пароля, подписанного перцем.
func (h *Hasher) Hash(plain string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword(h.peppered(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func (h *Hasher) Compare(hash, plain string) error {
	const op = "password.Compare"
	if err := bcrypt.CompareHashAndPassword([]byte(hash), h.peppered(plain)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (h *Hasher) peppered(plain string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(plain))
	sum := mac.Sum(nil)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum)
	return out
}
