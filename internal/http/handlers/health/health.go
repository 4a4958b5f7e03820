// Package health реализует проверку состояния сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
)

const pingTimeout = 2 * time.Second

// Response — состояние сервиса.
type Response struct {
	Status   string `json:"status" example:"ok"`
	Server   string `json:"server" example:"running"`
	Database string `json:"database" example:"connected"`
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает GET /health.
type Handler struct {
	log *slog.Logger
	db  Pinger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

// ServeHTTP godoc
// @Summary Состояние сервиса
// @Description Всегда отвечает 200; поле database показывает доступность хранилища.
// @Tags Health
// @Produce  json
// @Success 200 {object} Response
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	resp := Response{
		Status:   "ok",
		Server:   "running",
		Database: "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		resp.Database = "disconnected"
	}

	render.JSON(w, r, resp)
}
