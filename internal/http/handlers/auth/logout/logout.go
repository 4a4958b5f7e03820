// Package logout реализует HTTP-обработчик выхода пользователя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fakenews-detector/internal/http/cookie"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/response"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
)

// Service отзывает сессию по токену.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// Handler обрабатывает POST /logout.
type Handler struct {
	log     *slog.Logger
	service Service
	cookies cookie.Options
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookies cookie.Options) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cookies: cookies,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Отзывает сессию и удаляет cookie. Повторный вызов безопасен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Message
// @Failure 500 {object} response.ErrorResponse "Не удалось отозвать сессию"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Logout(r.Context(), h.cookies.Read(r)); err != nil {
		log.Error("failed to revoke session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("logout failed"))
		return
	}

	h.cookies.Clear(w)
	log.Info("logged out")
	render.JSON(w, r, response.OK("Logged out successfully"))
}
