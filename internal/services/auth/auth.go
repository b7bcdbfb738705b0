// Package auth реализует выпуск и проверку учётных данных: пароли с перцем,
// пары access/refresh токенов и вход по email и паролю.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByEmail возвращает пользователя по email без учёта регистра.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// TouchUserAccess обновляет время последнего входа.
	TouchUserAccess(ctx context.Context, id string, at time.Time) error
}

// PasswordHasher хеширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// Service отвечает за пароли, токены и вход пользователей.
type Service struct {
	users    UserRepository
	hasher   PasswordHasher
	jwtMaker jwt.Maker
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый экземпляр Service.
func New(users UserRepository, hasher PasswordHasher, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		jwtMaker: jwtMaker,
		log:      log,
		now:      time.Now,
	}
}

// HashPassword возвращает хэш пароля с перцем.
func (s *Service) HashPassword(plain string) (string, error) {
	return s.hasher.Hash(plain)
}

// VerifyPassword сообщает, соответствует ли пароль хэшу.
func (s *Service) VerifyPassword(plain, hash string) bool {
	return s.hasher.Compare(hash, plain) == nil
}

// IssueTokens выпускает пару токенов для actor.
func (s *Service) IssueTokens(actor *models.Actor) (jwt.TokenPair, error) {
	const op = "auth.IssueTokens"
	pair, err := s.jwtMaker.GeneratePair(actor)
	if err != nil {
		return jwt.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	return pair, nil
}

// VerifyToken проверяет access токен и возвращает личность из него.
func (s *Service) VerifyToken(token string) (*models.Actor, error) {
	claims, err := s.jwtMaker.ParseToken(token, jwt.TokenAccess)
	if err != nil {
		s.log.Debug("access token rejected", slog.String("op", "auth.VerifyToken"), sl.Err(err))
		return nil, apperr.Authentication("not authenticated")
	}
	return claims.Actor(), nil
}

// Refresh проверяет refresh токен и выпускает новую пару (ротация).
func (s *Service) Refresh(refreshToken string) (*models.Actor, jwt.TokenPair, error) {
	const op = "auth.Refresh"
	claims, err := s.jwtMaker.ParseToken(refreshToken, jwt.TokenRefresh)
	if err != nil {
		s.log.Debug("refresh token rejected", slog.String("op", op), sl.Err(err))
		return nil, jwt.TokenPair{}, apperr.Authentication("not authenticated")
	}
	actor := claims.Actor()
	pair, err := s.jwtMaker.GeneratePair(actor)
	if err != nil {
		return nil, jwt.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	return actor, pair, nil
}

// Login проверяет email и пароль пользователя и выпускает пару токенов.
// Неизвестный email, неверный пароль и отключённая учётная запись
// неразличимы для вызывающей стороны.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*models.User, jwt.TokenPair, error) {
	const op = "auth.Login"
	log := s.log.With(slog.String("op", op))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, jwt.TokenPair{}, apperr.Authentication("invalid credentials")
		}
		return nil, jwt.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}
	if !s.VerifyPassword(rawPassword, user.PasswordHash) {
		return nil, jwt.TokenPair{}, apperr.Authentication("invalid credentials")
	}
	if user.Status != models.StatusActive {
		log.Info("inactive user tried to log in", slog.String("user_id", user.ID))
		return nil, jwt.TokenPair{}, apperr.Authentication("invalid credentials")
	}

	pair, err := s.IssueTokens(user.Actor())
	if err != nil {
		return nil, jwt.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	if err := s.users.TouchUserAccess(ctx, user.ID, now); err != nil {
		log.Warn("failed to update last access", sl.Err(err))
	} else {
		user.LastAccessAt = &now
	}
	return user, pair, nil
}
