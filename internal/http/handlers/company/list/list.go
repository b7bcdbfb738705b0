// Package list реализует HTTP-обработчик списка компаний.
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

// Service описывает бизнес-логику выборки компаний.
type Service interface {
	List(ctx context.Context, actor *models.Actor) ([]*models.Company, error)
}

// Handler обрабатывает GET /companies.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список компаний
// @Description Доступно только суперадминистратору.
// @Tags Companies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список компаний"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Router /companies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	companies, err := h.service.List(r.Context(), middlewarectx.ActorFrom(r.Context()))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	if companies == nil {
		companies = []*models.Company{}
	}

	response.JSON(w, r, http.StatusOK, companies)
}
