package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

// CreateAnalysis добавляет результат анализа и возвращает его ID.
func (s *Storage) CreateAnalysis(ctx context.Context, analysis models.Analysis) (int64, error) {
	const op = "storage.CreateAnalysis"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO analyses (user_uid, news_text, prediction, confidence, analyzed_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		analysis.UserUID, analysis.NewsText, analysis.Prediction, analysis.Confidence,
		analysis.AnalyzedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListAnalysesByUser возвращает все анализы пользователя, начиная с самого нового.
// Для пользователя без анализов возвращается пустой срез.
func (s *Storage) ListAnalysesByUser(ctx context.Context, userUID string) ([]*models.Analysis, error) {
	const op = "storage.ListAnalysesByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, news_text, prediction, confidence, analyzed_at
			  FROM analyses
			  WHERE user_uid = $1
			  ORDER BY analyzed_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Analysis, 0)
	for rows.Next() {
		var a models.Analysis
		if err = rows.Scan(&a.ID, &a.UserUID, &a.NewsText, &a.Prediction,
			&a.Confidence, &a.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
