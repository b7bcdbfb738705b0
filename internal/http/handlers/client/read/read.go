// Package read реализует HTTP-обработчик получения клиента по ID.
package read

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

// Service описывает бизнес-логику чтения клиента.
type Service interface {
	Get(ctx context.Context, actor *models.Actor, id string) (*models.Client, error)
}

// Handler обрабатывает GET /clients/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить клиента
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Success 200 {object} response.Response "Клиент"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Router /clients/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	client, err := h.service.Get(r.Context(), middlewarectx.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	response.JSON(w, r, http.StatusOK, client)
}
