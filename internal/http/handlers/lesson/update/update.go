// Package update реализует HTTP-обработчик изменения занятия.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Service описывает бизнес-логику изменения занятия.
type Service interface {
	Update(ctx context.Context, actor *models.Actor, id string, input models.LessonInput) (*models.Lesson, error)
}

// Handler обрабатывает PUT /lessons/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Изменить занятие
// @Description Полностью заменяет данные занятия. Новый слот проверяется на пересечения, само занятие не учитывается.
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID занятия"
// @Param request body models.LessonInput true "Новые данные занятия"
// @Success 200 {object} response.Response "Изменённое занятие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Занятие не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или слот занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /lessons/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.LessonInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.service.Update(r.Context(), middlewarectx.ActorFrom(r.Context()), id, req)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("lesson updated", slog.String("id", lesson.ID))
	response.JSON(w, r, http.StatusOK, lesson)
}
