package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// TokenType отличает access токен от refresh токена.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

// ErrWrongTokenType возвращается, когда refresh токен предъявлен вместо access или наоборот.
var ErrWrongTokenType = errors.New("wrong token type")

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserID               string      `json:"id"`
	Email                string      `json:"email"`
	Role                 models.Role `json:"role"`
	CompanyID            string      `json:"company_id"`
	TokenType            TokenType   `json:"token_type"`
	jwt.RegisteredClaims             // ExpiresAt, IssuedAt, ID
}

// Actor восстанавливает личность пользователя из claims.
func (c *CustomClaims) Actor() *models.Actor {
	return &models.Actor{
		ID:        c.UserID,
		Email:     c.Email,
		Role:      c.Role,
		CompanyID: c.CompanyID,
	}
}

// GeneratePair подписывает access и refresh токены секретным ключом.
func (j *MakerImpl) GeneratePair(actor *models.Actor) (TokenPair, error) {
	const op = "jwt.GeneratePair"
	access, err := j.generate(actor, TokenAccess)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	refresh, err := j.generate(actor, TokenRefresh)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (j *MakerImpl) generate(actor *models.Actor, tokenType TokenType) (string, error) {
	ttl := j.accessTTL
	if tokenType == TokenRefresh {
		ttl = j.refreshTTL
	}
	now := j.now()
	claims := CustomClaims{
		UserID:    actor.ID,
		Email:     actor.Email,
		Role:      actor.Role,
		CompanyID: actor.CompanyID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет подпись, срок действия и тип,
// возвращает CustomClaims, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string, tokenType TokenType) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%s: %w", op, ErrWrongTokenType)
	}
	return claims, nil
}
