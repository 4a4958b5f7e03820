// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// Имя и email валидируются в обработчике, требования к паролю проверяет
// сервис уже после проверки занятости email. При успехе пользователь
// создаётся, но сессия не выдаётся.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fakenews-detector/internal/http/response"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
	"github.com/magabrotheeeer/fakenews-detector/internal/services/account"
)

// Request — входные данные для регистрации.
type Request struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"` // длина проверяется в account.Service после проверки email
}

// Service описывает регистрацию пользователя.
type Service interface {
	Signup(ctx context.Context, name, email, password string) error
}

// Handler обрабатывает POST /signup.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись. Сессия не выдаётся.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или пользователь уже существует"
// @Failure 413 {object} response.ErrorResponse "Тело запроса слишком большое"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		status, body := response.DecodeFailure(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, account.ErrUserExists) {
		log.Info("user already exists")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("user already exists"))
		return
	}
	if errors.Is(err, account.ErrPasswordTooShort) {
		log.Info("password is too short")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(fmt.Sprintf("field Password must be at least %d characters long", account.MinPasswordLength)))
		return
	}
	if errors.Is(err, account.ErrPasswordTooLong) {
		log.Info("password is too long")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(fmt.Sprintf("field Password must be at most %d characters long", account.MaxPasswordBytes)))
		return
	}
	if err != nil {
		log.Error("failed to sign up", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("signup failed"))
		return
	}

	log.Info("user signed up")
	render.JSON(w, r, response.OK("Signup successful"))
}
