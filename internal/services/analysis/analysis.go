// Package analysis содержит оркестрацию анализа новостей: проверку пользователя,
// обращение к ML-сервису, приведение ответа к вердикту и сохранение истории.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/fakenews-detector/internal/lib/metrics"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
	"github.com/magabrotheeeer/fakenews-detector/internal/models"
	"github.com/magabrotheeeer/fakenews-detector/internal/scorer"
	"github.com/magabrotheeeer/fakenews-detector/internal/storage"
)

var (
	// ErrUserNotFound — сессия ссылается на пользователя, которого нет в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmptyNewsText — пустой текст новости.
	ErrEmptyNewsText = errors.New("news text is required")
	// ErrScorerUnavailable — ML-сервис не ответил или ответил ошибкой.
	ErrScorerUnavailable = errors.New("ML server unavailable")
	// ErrInvalidScorerResponse — в ответе ML-сервиса нет нужных полей.
	ErrInvalidScorerResponse = errors.New("invalid ML response format")
	// ErrPersistence — вердикт получен, но не сохранён.
	ErrPersistence = errors.New("failed to record analysis")
	// ErrStoreUnavailable — хранилище не отвечает.
	ErrStoreUnavailable = errors.New("database not connected")
)

// ScorerResponseError несёт исходное тело ответа ML-сервиса.
type ScorerResponseError struct {
	Raw    string
	Reason string
}

func (e *ScorerResponseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidScorerResponse, e.Reason)
}

func (e *ScorerResponseError) Unwrap() error {
	return ErrInvalidScorerResponse
}

// UserRepository ищет пользователя по email из сессии.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AnalysisRepository — хранилище истории анализов.
type AnalysisRepository interface {
	CreateAnalysis(ctx context.Context, analysis models.Analysis) (int64, error)
	ListAnalysesByUser(ctx context.Context, userUID string) ([]*models.Analysis, error)
}

// Scorer классифицирует текст новости.
type Scorer interface {
	Score(ctx context.Context, text string) (*scorer.Response, error)
}

// Publisher публикует события о сохранённых анализах.
type Publisher interface {
	PublishAnalysis(ctx context.Context, analysis models.Analysis) error
}

// Service реализует предсказание и историю анализов.
type Service struct {
	log       *slog.Logger
	users     UserRepository
	analyses  AnalysisRepository
	scorer    Scorer
	publisher Publisher
	now       func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithPublisher включает публикацию событий. Без неё события не отправляются.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New создаёт новый экземпляр Service.
func New(log *slog.Logger, users UserRepository, analyses AnalysisRepository, sc Scorer, opts ...Option) *Service {
	s := &Service{
		log:      log,
		users:    users,
		analyses: analyses,
		scorer:   sc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict классифицирует текст новости от имени пользователя сессии и
// сохраняет результат в историю.
func (s *Service) Predict(ctx context.Context, identity models.Identity, newsText string) (*models.Verdict, error) {
	const op = "analysis.Predict"

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if newsText == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyNewsText)
	}

	started := time.Now()
	resp, err := s.scorer.Score(ctx, newsText)
	metrics.ScorerDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, scorer.ErrInvalidResponse):
			metrics.ScorerFailuresTotal.WithLabelValues("invalid_response").Inc()
			return nil, fmt.Errorf("%s: %w", op, &ScorerResponseError{Reason: err.Error()})
		default:
			metrics.ScorerFailuresTotal.WithLabelValues("unavailable").Inc()
			return nil, fmt.Errorf("%s: %w: %w", op, ErrScorerUnavailable, err)
		}
	}

	verdict, err := toVerdict(resp)
	if err != nil {
		metrics.ScorerFailuresTotal.WithLabelValues("invalid_response").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record := models.Analysis{
		UserUID:    user.UID,
		NewsText:   newsText,
		Prediction: verdict.Prediction,
		Confidence: verdict.Confidence,
		AnalyzedAt: s.now().UTC(),
	}
	id, err := s.analyses.CreateAnalysis(ctx, record)
	if err != nil {
		s.log.Error("analysis computed but not recorded",
			slog.String("op", op),
			slog.String("uid", user.UID),
			slog.String("prediction", verdict.Prediction),
			slog.Float64("confidence", verdict.Confidence),
			sl.Err(err),
		)
		metrics.UnrecordedAnalysesTotal.Inc()
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	record.ID = id
	metrics.PredictionsTotal.WithLabelValues(verdict.Prediction).Inc()

	if s.publisher != nil {
		if err = s.publisher.PublishAnalysis(ctx, record); err != nil {
			s.log.Warn("failed to publish analysis event", slog.Int64("id", id), sl.Err(err))
		}
	}

	return verdict, nil
}

// History возвращает все анализы пользователя сессии, новые первыми.
func (s *Service) History(ctx context.Context, identity models.Identity) ([]*models.Analysis, error) {
	const op = "analysis.History"

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.analyses.ListAnalysesByUser(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if items == nil {
		items = []*models.Analysis{}
	}
	return items, nil
}

func (s *Service) resolveUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, identity.Email)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return user, nil
}

// toVerdict приводит ответ ML-сервиса к вердикту.
// Real ставится только для JSON-строки "true", любое другое значение даёт Fake.
func toVerdict(resp *scorer.Response) (*models.Verdict, error) {
	if isAbsent(resp.Prediction) || isAbsent(resp.Probability) {
		return nil, &ScorerResponseError{Raw: resp.Raw, Reason: "prediction or probability is missing"}
	}

	var confidence float64
	if err := json.Unmarshal(resp.Probability, &confidence); err != nil {
		return nil, &ScorerResponseError{Raw: resp.Raw, Reason: "probability is not a number"}
	}

	prediction := models.PredictionFake
	var label string
	if err := json.Unmarshal(resp.Prediction, &label); err == nil && label == "true" {
		prediction = models.PredictionReal
	}

	return &models.Verdict{
		Prediction: prediction,
		Confidence: confidence,
	}, nil
}

func isAbsent(v json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(v))
	return trimmed == "" || trimmed == "null"
}
