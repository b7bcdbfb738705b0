// Package list реализует HTTP-обработчик списка клиентов компании.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Service описывает бизнес-логику выборки клиентов.
type Service interface {
	List(ctx context.Context, actor *models.Actor, companyID string) ([]*models.Client, error)
}

// Handler обрабатывает GET /clients?company=.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Клиенты компании
// @Description Возвращает клиентов компании участника. Суперадминистратор может указать компанию.
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param company query string false "ID компании"
// @Success 200 {object} response.Response "Список клиентов"
// @Failure 404 {object} response.ErrorResponse "Компания не найдена"
// @Router /clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	clients, err := h.service.List(r.Context(), middlewarectx.ActorFrom(r.Context()), r.URL.Query().Get("company"))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	if clients == nil {
		clients = []*models.Client{}
	}

	response.JSON(w, r, http.StatusOK, clients)
}
