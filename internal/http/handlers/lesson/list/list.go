// Package list реализует HTTP-обработчики выборки занятий пользователя и клиента
// в полуоткрытом интервале [start, end).
package list

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Service описывает бизнес-логику выборки занятий.
type Service interface {
	ListForUser(ctx context.Context, actor *models.Actor, filter models.LessonFilter) ([]*models.Lesson, error)
	ListForClient(ctx context.Context, actor *models.Actor, filter models.LessonFilter) ([]*models.Lesson, error)
}

// ForUser обрабатывает GET /lessons?user=&start=&end=.
type ForUser struct {
	log     *slog.Logger
	service Service
}

// NewForUser создает обработчик выборки занятий пользователя.
func NewForUser(log *slog.Logger, service Service) *ForUser {
	return &ForUser{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Занятия пользователя
// @Description Суперадминистратор может указать пользователя, остальные видят только свои занятия.
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param user query string false "ID пользователя"
// @Param start query string false "Начало интервала, RFC3339, включительно"
// @Param end query string false "Конец интервала, RFC3339, не включительно"
// @Success 200 {object} response.Response "Список занятий"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Некорректный интервал"
// @Router /lessons [get]
func (h *ForUser) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.list.user"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseRange(r.URL.Query())
	if err != nil {
		log.Info("failed to parse query", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, err.Error())
		return
	}
	filter.UserID = r.URL.Query().Get("user")

	lessons, err := h.service.ListForUser(r.Context(), middlewarectx.ActorFrom(r.Context()), filter)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	response.JSON(w, r, http.StatusOK, nonNil(lessons))
}

// ForClient обрабатывает GET /clients/{id}/lessons?start=&end=.
type ForClient struct {
	log     *slog.Logger
	service Service
}

// NewForClient создает обработчик выборки занятий клиента.
func NewForClient(log *slog.Logger, service Service) *ForClient {
	return &ForClient{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Занятия клиента
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Param start query string false "Начало интервала, RFC3339, включительно"
// @Param end query string false "Конец интервала, RFC3339, не включительно"
// @Success 200 {object} response.Response "Список занятий"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Router /clients/{id}/lessons [get]
func (h *ForClient) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.list.client"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseRange(r.URL.Query())
	if err != nil {
		log.Info("failed to parse query", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, err.Error())
		return
	}
	filter.ClientID = chi.URLParam(r, "id")

	lessons, err := h.service.ListForClient(r.Context(), middlewarectx.ActorFrom(r.Context()), filter)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	response.JSON(w, r, http.StatusOK, nonNil(lessons))
}

func parseRange(q url.Values) (models.LessonFilter, error) {
	var f models.LessonFilter
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{
		{"start", &f.Start},
		{"end", &f.End},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, fmt.Errorf("query parameter %s must be RFC3339", p.name)
		}
		*p.dst = &t
	}
	return f, nil
}

func nonNil(lessons []*models.Lesson) []*models.Lesson {
	if lessons == nil {
		return []*models.Lesson{}
	}
	return lessons
}
