// Package predict реализует HTTP-обработчик классификации новости.
//
// Текст новости передаётся внешнему ML-сервису, результат сохраняется в
// историю пользователя и возвращается клиенту в виде {prediction, confidence}.
package predict

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

const scorerUnavailableDetails = "The prediction service is not responding. Make sure the ML server is running."

// Request — текст новости для проверки.
type Request struct {
	News string `json:"news" example:"Scientists discover a new species of deep-sea fish"`
}

// Service описывает классификацию новости.
type Service interface {
	Predict(ctx context.Context, identity models.Identity, newsText string) (*models.Verdict, error)
}

// Handler обрабатывает POST /predict.
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
// @Summary Проверка новости
// @Description Классифицирует текст новости как Real или Fake и сохраняет результат.
// @Tags Analysis
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст новости"
// @Success 200 {object} models.Verdict
// @Failure 400 {object} response.ErrorResponse "Пустой текст или некорректный JSON"
// @Failure 413 {object} response.ErrorResponse "Тело запроса слишком большое"
// @Failure 401 {object} response.ErrorResponse "Нет сессии или пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Некорректный ответ ML-сервиса или ошибка сохранения"
// @Failure 503 {object} response.ErrorResponse "ML-сервис или база данных недоступны"
// @Router /predict [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analysis.predict"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		status, body := response.DecodeFailure(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	verdict, err := h.service.Predict(r.Context(), identity, req.News)
	if err != nil {
		h.renderError(w, r, log, err)
		return
	}

	log.Info("news analysed",
		slog.String("prediction", verdict.Prediction),
		slog.Float64("confidence", verdict.Confidence),
	)
	render.JSON(w, r, verdict)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var respErr *analysis.ScorerResponseError

	switch {
	case errors.Is(err, analysis.ErrEmptyNewsText):
		log.Info("empty news text")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("news text is required"))
	case errors.Is(err, analysis.ErrUserNotFound):
		log.Info("session user not found")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user not found"))
	case errors.Is(err, analysis.ErrStoreUnavailable):
		log.Error("store unavailable", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database not connected"))
	case errors.Is(err, analysis.ErrScorerUnavailable):
		log.Error("scorer unavailable", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ErrorWithDetails("ML server unavailable", scorerUnavailableDetails))
	case errors.As(err, &respErr):
		log.Error("invalid scorer response", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithDetails("invalid ML response format", respErr.Raw))
	default:
		log.Error("prediction failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("prediction failed"))
	}
}
