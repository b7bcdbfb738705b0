// Package remove реализует HTTP-обработчик удаления занятия.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Service описывает бизнес-логику удаления занятия.
type Service interface {
	Delete(ctx context.Context, actor *models.Actor, id string) (*models.Lesson, error)
}

// Handler обрабатывает DELETE /lessons/{id}.
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
// @Summary Удалить занятие
// @Description Удаляет занятие и возвращает его последнее состояние.
// @Tags Lessons
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID занятия"
// @Success 200 {object} response.Response "Удалённое занятие"
// @Failure 401 {object} response.ErrorResponse "Не авторизован"
// @Failure 404 {object} response.ErrorResponse "Занятие не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /lessons/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lesson, err := h.service.Delete(r.Context(), middlewarectx.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("lesson removed", slog.String("id", lesson.ID))
	response.JSON(w, r, http.StatusOK, lesson)
}
