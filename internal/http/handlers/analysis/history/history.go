// Package history реализует HTTP-обработчик истории анализов пользователя.
package history

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fakenews-detector/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/response"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
	"github.com/magabrotheeeer/fakenews-detector/internal/models"
	"github.com/magabrotheeeer/fakenews-detector/internal/services/analysis"
)

// Service возвращает историю анализов.
type Service interface {
	History(ctx context.Context, identity models.Identity) ([]*models.Analysis, error)
}

// Handler обрабатывает GET /my-analysis.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История проверок
// @Description Возвращает все проверки пользователя, новые первыми.
// @Tags Analysis
// @Produce  json
// @Success 200 {array} models.Analysis
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /my-analysis [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analysis.history"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("identity missing in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	items, err := h.service.History(r.Context(), identity)
	switch {
	case errors.Is(err, analysis.ErrUserNotFound):
		log.Info("session user not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("user not found"))
		return
	case errors.Is(err, analysis.ErrStoreUnavailable):
		log.Error("store unavailable", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database not connected"))
		return
	case err != nil:
		log.Error("failed to fetch analysis", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch analysis"))
		return
	}

	log.Debug("history fetched", slog.Int("count", len(items)))
	render.JSON(w, r, items)
}
