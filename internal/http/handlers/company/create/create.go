// Package create реализует HTTP-обработчик создания компании.
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

// Service описывает бизнес-логику создания компании.
type Service interface {
	Create(ctx context.Context, actor *models.Actor, in models.CompanyInput) (*models.Company, error)
}

// Handler обрабатывает POST /companies.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать компанию
// @Description Доступно только суперадминистратору. Название уникально без учёта регистра.
// @Tags Companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CompanyInput true "Данные компании"
// @Success 201 {object} response.Response "Созданная компания"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /companies [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.create"

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

	company, err := h.service.Create(r.Context(), middlewarectx.ActorFrom(r.Context()), req)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("company created", slog.String("id", company.ID))
	response.JSON(w, r, http.StatusCreated, company)
}
