// Package lesson реализует жизненный цикл занятий: создание, изменение, удаление
// и выборки с проверкой прав и пересечений по времени.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/ident"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/services/access"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

// Типы событий, публикуемых после изменения занятия.
const (
	EventCreated = "lesson.created"
	EventUpdated = "lesson.updated"
	EventDeleted = "lesson.deleted"
)

// LessonRepository определяет методы для работы с занятиями в хранилище.
type LessonRepository interface {
	// CreateLesson сохраняет занятие и возвращает сохранённую запись.
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	// GetLesson возвращает занятие по ID или storage.ErrNotFound.
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
	// UpdateLesson перезаписывает поля занятия и возвращает новую версию.
	UpdateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	// RemoveLesson удаляет занятие по ID.
	RemoveLesson(ctx context.Context, id string) error
	// ListLessons возвращает занятия по фильтру, отсортированные по началу.
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]*models.Lesson, error)
	// ListForOverlap возвращает занятия пользователя или клиента,
	// начинающиеся в окне [from, to).
	ListForOverlap(ctx context.Context, userID, clientID string, from, to time.Time) ([]*models.Lesson, error)
}

// ClientRepository нужен для определения компании, которой принадлежит занятие.
type ClientRepository interface {
	GetClient(ctx context.Context, id string) (*models.Client, error)
}

// UserRepository нужен для проверки пользователя, ведущего занятие.
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher публикует события об изменении занятий.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, lesson *models.Lesson) error
}

// Service реализует бизнес-логику работы с занятиями.
type Service struct {
	lessons  LessonRepository
	clients  ClientRepository
	users    UserRepository
	cache    Cache
	events   EventPublisher
	log      *slog.Logger
	cacheTTL time.Duration
}

// New создает новый экземпляр Service.
func New(
	lessons LessonRepository,
	clients ClientRepository,
	users UserRepository,
	cache Cache,
	events EventPublisher,
	log *slog.Logger,
	cacheTTL time.Duration,
) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Service{
		lessons:  lessons,
		clients:  clients,
		users:    users,
		cache:    cache,
		events:   events,
		log:      log,
		cacheTTL: cacheTTL,
	}
}

// Create проверяет входные данные и права, затем создаёт занятие,
// если слот свободен и у пользователя, и у клиента.
func (s *Service) Create(ctx context.Context, actor *models.Actor, input models.LessonInput) (*models.Lesson, error) {
	const op = "lesson.Create"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", client.CompanyID, false); err != nil {
		return nil, err
	}
	if err := s.checkInstructor(ctx, input.UserID, client); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	proposed := fromInput(input)
	proposed.ClientID = client.ID
	if err := s.checkSlot(ctx, proposed, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.lessons.CreateLesson(ctx, proposed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new lesson", slog.String("op", op), slog.String("id", created.ID))

	s.remember(ctx, created)
	s.publish(ctx, EventCreated, created)
	return created, nil
}

// Update перезаписывает занятие id данными из input. Права проверяются дважды:
// по клиенту из запроса и по клиенту, к которому занятие привязано сейчас.
func (s *Service) Update(ctx context.Context, actor *models.Actor, id string, input models.LessonInput) (*models.Lesson, error) {
	const op = "lesson.Update"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", client.CompanyID, false); err != nil {
		return nil, err
	}

	existing, err := s.getLesson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	owner, err := s.getClient(ctx, existing.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", owner.CompanyID, false); err != nil {
		return nil, err
	}

	if err := s.checkInstructor(ctx, input.UserID, client); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	merged := fromInput(input)
	merged.ID = existing.ID
	merged.ClientID = client.ID
	merged.CreatedAt = existing.CreatedAt
	if err := s.checkSlot(ctx, merged, existing.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.lessons.UpdateLesson(ctx, merged)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.NotFound("lesson not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated lesson", slog.String("op", op), slog.String("id", updated.ID))

	s.remember(ctx, updated)
	s.publish(ctx, EventUpdated, updated)
	return updated, nil
}

// Delete удаляет занятие и возвращает его состояние до удаления.
// Чужое занятие неотличимо от несуществующего.
func (s *Service) Delete(ctx context.Context, actor *models.Actor, id string) (*models.Lesson, error) {
	const op = "lesson.Delete"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	existing, err := s.getLesson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.authorizeLesson(ctx, actor, existing); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.lessons.RemoveLesson(ctx, existing.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.NotFound("lesson not found"))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed lesson", slog.String("op", op), slog.String("id", existing.ID))

	if err := s.cache.Invalidate(ctx, cacheKey(existing.ID)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey(existing.ID)), sl.Err(err))
	}
	s.publish(ctx, EventDeleted, existing)
	return existing, nil
}

// Get возвращает занятие по ID, используя кеш или репозиторий.
// Чужое занятие неотличимо от несуществующего.
func (s *Service) Get(ctx context.Context, actor *models.Actor, id string) (*models.Lesson, error) {
	const op = "lesson.Get"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var result *models.Lesson
	found, err := s.cache.Get(ctx, cacheKey(id), &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	if !found || result == nil {
		result, err = s.getLesson(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.remember(ctx, result)
	}

	if err := s.authorizeLesson(ctx, actor, result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListForUser возвращает занятия пользователя. SuperAdmin может запросить любого
// пользователя, иначе получает все занятия своей компании (пустой список, если
// компании у него нет). Остальным фильтр
// по пользователю молча заменяется на их собственный ID.
func (s *Service) ListForUser(ctx context.Context, actor *models.Actor, filter models.LessonFilter) ([]*models.Lesson, error) {
	const op = "lesson.ListForUser"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := validateRange(filter); err != nil {
		return nil, err
	}

	f := models.LessonFilter{Start: filter.Start, End: filter.End}
	switch {
	case access.IsSuperAdmin(actor) && filter.UserID != "":
		user, err := s.users.GetUser(ctx, ident.Canonical(filter.UserID))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, notFound(err, "user not found"))
		}
		f.UserID = user.ID
	case access.IsSuperAdmin(actor):
		// Без компании в токене фильтр по компании пуст и вернул бы занятия всех компаний.
		if ident.Canonical(actor.CompanyID) == "" {
			return []*models.Lesson{}, nil
		}
		f.CompanyID = actor.CompanyID
	default:
		f.UserID = actor.ID
	}

	lessons, err := s.lessons.ListLessons(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lessons, nil
}

// ListForClient возвращает занятия клиента, если actor имеет доступ к его компании.
func (s *Service) ListForClient(ctx context.Context, actor *models.Actor, filter models.LessonFilter) ([]*models.Lesson, error) {
	const op = "lesson.ListForClient"
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(filter.ClientID) == "" {
		return nil, apperr.Validation("field client is a required field")
	}
	if err := validateRange(filter); err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx, filter.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := access.Authorize(actor, "", client.CompanyID, false); err != nil {
		return nil, err
	}

	lessons, err := s.lessons.ListLessons(ctx, models.LessonFilter{
		ClientID: client.ID,
		Start:    filter.Start,
		End:      filter.End,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lessons, nil
}

// authorizeLesson проверяет доступ к занятию через компанию его клиента.
// Отказ в доступе сообщается как отсутствие занятия.
func (s *Service) authorizeLesson(ctx context.Context, actor *models.Actor, l *models.Lesson) error {
	client, err := s.clients.GetClient(ctx, l.ClientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("lesson not found")
		}
		return err
	}
	if err := access.Authorize(actor, "", client.CompanyID, false); err != nil {
		if errors.Is(err, apperr.ErrForbidden) {
			return apperr.NotFound("lesson not found")
		}
		return err
	}
	return nil
}

// checkInstructor проверяет, что ведущий занятия существует и работает в компании клиента.
func (s *Service) checkInstructor(ctx context.Context, userID string, client *models.Client) error {
	user, err := s.users.GetUser(ctx, ident.Canonical(userID))
	if err != nil {
		return notFound(err, "user not found")
	}
	if !ident.Equal(user.CompanyID, client.CompanyID) {
		return apperr.Validation("user and client belong to different companies")
	}
	return nil
}

func (s *Service) checkSlot(ctx context.Context, proposed models.Lesson, excludeID string) error {
	from, to := overlapWindow(proposed)
	candidates, err := s.lessons.ListForOverlap(ctx, proposed.UserID, proposed.ClientID, from, to)
	if err != nil {
		return err
	}
	return CheckOverlap(proposed, candidates, excludeID)
}

func (s *Service) getClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.clients.GetClient(ctx, ident.Canonical(id))
	if err != nil {
		return nil, notFound(err, "client not found")
	}
	return client, nil
}

func (s *Service) getLesson(ctx context.Context, id string) (*models.Lesson, error) {
	l, err := s.lessons.GetLesson(ctx, ident.Canonical(id))
	if err != nil {
		return nil, notFound(err, "lesson not found")
	}
	return l, nil
}

func (s *Service) remember(ctx context.Context, l *models.Lesson) {
	key := cacheKey(l.ID)
	if err := s.cache.Set(ctx, key, l, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache lesson", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service) publish(ctx context.Context, eventType string, l *models.Lesson) {
	if err := s.events.Publish(ctx, eventType, l); err != nil {
		s.log.Warn("failed to publish lesson event",
			slog.String("event", eventType),
			slog.String("id", l.ID),
			sl.Err(err),
		)
	}
}

func cacheKey(id string) string {
	return "lesson:" + ident.Canonical(id)
}

func notFound(err error, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(msg)
	}
	return err
}
