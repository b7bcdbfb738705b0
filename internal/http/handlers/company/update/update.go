// Package update реализует HTTP-обработчик переименования компании.
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

// Service описывает бизнес-логику изменения компании.
type Service interface {
	Update(ctx context.Context, actor *models.Actor, id string, in models.CompanyInput) (*models.Company, error)
}

// Handler обрабатывает PUT /companies/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изменить компанию
// @Description Доступно только суперадминистратору. Название уникально без учёта регистра.
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID компании"
// @Param request body models.CompanyInput true "Данные компании"
// @Success 200 {object} response.Response "Обновлённая компания"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 404 {object} response.ErrorResponse "Компания не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /companies/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CompanyInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.service.Update(r.Context(), middlewarectx.ActorFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("company updated", slog.String("id", company.ID))
	response.JSON(w, r, http.StatusOK, company)
}
