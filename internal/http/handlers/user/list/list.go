// Package list реализует HTTP-обработчик списка пользователей компании.
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

// Service описывает бизнес-логику выборки пользователей.
type Service interface {
	List(ctx context.Context, actor *models.Actor, companyID string) ([]*models.User, error)
}

// Handler обрабатывает GET /users?company=.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пользователи компании
// @Description Возвращает пользователей своей компании. Суперадминистратор может указать компанию.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param company query string false "ID компании"
// @Success 200 {object} response.Response "Список пользователей"
// @Failure 404 {object} response.ErrorResponse "Компания не найдена"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context(), middlewarectx.ActorFrom(r.Context()), r.URL.Query().Get("company"))
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	response.JSON(w, r, http.StatusOK, users)
}
