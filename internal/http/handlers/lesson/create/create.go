// Package create реализует HTTP-обработчик создания занятия.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Service описывает бизнес-логику создания занятия.
type Service interface {
	Create(ctx context.Context, actor *models.Actor, input models.LessonInput) (*models.Lesson, error)
}

// Handler обрабатывает POST /lessons.
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
// @Summary Создать занятие
// @Description Создаёт занятие пользователя с клиентом. Слот не должен пересекаться с другими занятиями пользователя или клиента.
// @Tags Lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.LessonInput true "Данные занятия"
// @Success 201 {object} response.Response "Созданное занятие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Клиент или пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или слот занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /lessons [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LessonInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.service.Create(r.Context(), middlewarectx.ActorFrom(r.Context()), req)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("lesson created", slog.String("id", lesson.ID))
	response.JSON(w, r, http.StatusCreated, lesson)
}
