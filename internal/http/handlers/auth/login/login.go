// Package login реализует HTTP-обработчик входа пользователя по email и паролю.
//
// При успешной аутентификации возвращается пара токенов (access и refresh)
// и профиль пользователя. Неверный email, неверный пароль и неактивная
// учётная запись неразличимы для клиента.
package login

import (
	"context"
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

// Request — учётные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service описывает бизнес-логику аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, jwt.TokenPair, error)
}

// Recorder учитывает попытки входа в метриках.
type Recorder interface {
	RecordLogin(success bool)
}

// Handler обрабатывает POST /login.
type Handler struct {
	log     *slog.Logger
	service Service
	metrics Recorder
}

// New создает новый Handler. metrics может быть nil.
func New(log *slog.Logger, service Service, metrics Recorder) *Handler {
	return &Handler{
		log:     log,
		service: service,
		metrics: metrics,
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю. Возвращает access- и refresh-токены.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, tokens, err := h.service.Login(r.Context(), req.Email, req.Password)
	h.record(err == nil)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("login success", slog.String("user_id", user.ID))
	response.JSON(w, r, http.StatusOK, map[string]any{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          user,
	})
}

func (h *Handler) record(success bool) {
	if h.metrics != nil {
		h.metrics.RecordLogin(success)
	}
}
