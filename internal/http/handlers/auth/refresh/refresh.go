// Package refresh реализует HTTP-обработчик обмена refresh-токена на новую пару токенов.
package refresh

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/validate"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Request содержит refresh-токен.
type Request struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Service выпускает новую пару токенов по refresh-токену.
type Service interface {
	Refresh(refreshToken string) (*models.Actor, jwt.TokenPair, error)
}

// Handler обрабатывает POST /refresh.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновить токены
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Refresh-токен"
// @Success 200 {object} response.Response "Новая пара токенов"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Недействительный токен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.FromError(w, r, log, err)
		return
	}

	actor, tokens, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("tokens refreshed", slog.String("user_id", actor.ID))
	response.JSON(w, r, http.StatusOK, map[string]any{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}
