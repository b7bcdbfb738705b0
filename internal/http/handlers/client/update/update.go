// Package update реализует HTTP-обработчик частичного изменения клиента.
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

// Service описывает бизнес-логику изменения клиента.
type Service interface {
	Update(ctx context.Context, actor *models.Actor, id string, in models.UpdateClientInput) (*models.Client, error)
}

// Handler обрабатывает PUT /clients/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изменить клиента
// @Description Меняются только переданные поля.
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Param request body models.UpdateClientInput true "Изменяемые поля"
// @Success 200 {object} response.Response "Изменённый клиент"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /clients/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateClientInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.service.Update(r.Context(), middlewarectx.ActorFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("client updated", slog.String("id", client.ID))
	response.JSON(w, r, http.StatusOK, client)
}
