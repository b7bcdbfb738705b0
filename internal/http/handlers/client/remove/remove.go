// Package remove реализует HTTP-обработчик удаления клиента.
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

// Service описывает бизнес-логику удаления клиента.
type Service interface {
	Delete(ctx context.Context, actor *models.Actor, id string) (*models.Client, error)
}

// Handler обрабатывает DELETE /clients/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить клиента
// @Description Клиента с занятиями удалить нельзя.
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Success 200 {object} response.Response "Удалённый клиент"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 422 {object} response.ErrorResponse "У клиента есть занятия"
// @Router /clients/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	client, err := h.service.Delete(r.Context(), middlewarectx.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("client removed", slog.String("id", client.ID))
	response.JSON(w, r, http.StatusOK, client)
}
