package models

import "time"

const (
	// PredictionReal — новость признана достоверной.
	PredictionReal = "Real"
	// PredictionFake — новость признана фейком.
	PredictionFake = "Fake"
)

// Analysis — сохранённый результат одной проверки новости.
// Записи неизменяемы и только добавляются.
type Analysis struct {
	ID         int64     `json:"id"`
	UserUID    string    `json:"userId"`
	NewsText   string    `json:"newsText"`
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// Verdict — ответ клиенту на запрос /predict.
type Verdict struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}
