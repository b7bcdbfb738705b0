// Package create реализует HTTP-обработчик создания клиента.
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

// Service описывает бизнес-логику создания клиента.
type Service interface {
	Create(ctx context.Context, actor *models.Actor, in models.NewClientInput) (*models.Client, error)
}

// Handler обрабатывает POST /clients.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать клиента
// @Description Email и телефон клиента должны быть уникальны. Создавать клиентов в чужой компании может только суперадминистратор.
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.NewClientInput true "Данные клиента"
// @Success 201 {object} response.Response "Созданный клиент"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Компания не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /clients [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.NewClientInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.service.Create(r.Context(), middlewarectx.ActorFrom(r.Context()), req)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("client created", slog.String("id", client.ID))
	response.JSON(w, r, http.StatusCreated, client)
}
