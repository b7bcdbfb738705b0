// Package read реализует HTTP-обработчик получения компании по ID.
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

// Service описывает бизнес-логику чтения компании.
type Service interface {
	Get(ctx context.Context, actor *models.Actor, id string) (*models.Company, error)
}

// Handler обрабатывает GET /companies/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить компанию
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID компании"
// @Success 200 {object} response.Response "Компания"
// @Failure 404 {object} response.ErrorResponse "Компания не найдена"
// @Router /companies/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	company, err := h.service.Get(r.Context(), middlewarectx.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	response.JSON(w, r, http.StatusOK, company)
}
