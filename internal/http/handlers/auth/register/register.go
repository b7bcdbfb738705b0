// Package register реализует HTTP-обработчик самостоятельной регистрации:
// создаётся компания и её первый пользователь с ролью Manager, в ответ
// сразу выдаётся пара токенов.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Registrar регистрирует компанию и её первого пользователя.
type Registrar interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
}

// RegistrarFunc позволяет использовать обычную функцию как Registrar.
type RegistrarFunc func(ctx context.Context, in models.RegisterInput) (*models.User, error)

// Register вызывает f(ctx, in).
func (f RegistrarFunc) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	return f(ctx, in)
}

// TokenIssuer выпускает пару токенов для зарегистрированного пользователя.
type TokenIssuer interface {
	IssueTokens(actor *models.Actor) (jwt.TokenPair, error)
}

// Handler обрабатывает POST /register.
type Handler struct {
	log       *slog.Logger
	registrar Registrar
	tokens    TokenIssuer
}

// New создает новый Handler.
func New(log *slog.Logger, registrar Registrar, tokens TokenIssuer) *Handler {
	return &Handler{log: log, registrar: registrar, tokens: tokens}
}

// ServeHTTP godoc
// @Summary Регистрация компании
// @Description Создаёт компанию и её первого пользователя с ролью менеджера. Возвращает access- и refresh-токены.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterInput true "Данные компании и пользователя"
// @Success 201 {object} response.Response "Пользователь зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации, email или название заняты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterInput
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.registrar.Register(r.Context(), req)
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	tokens, err := h.tokens.IssueTokens(user.Actor())
	if err != nil {
		response.FromError(w, r, log, err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID), slog.String("company_id", user.CompanyID))
	response.JSON(w, r, http.StatusCreated, map[string]any{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          user,
	})
}
