package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

// Channel — часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PublishMessage сериализует message в JSON и публикует его как persistent-сообщение.
func PublishMessage(ch Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AnalysisCreated — событие о сохранённом результате анализа.
// Текст новости в событие не попадает.
type AnalysisCreated struct {
	ID         int64     `json:"id"`
	UserUID    string    `json:"userId"`
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// AnalysisPublisher публикует AnalysisCreated в заданный exchange.
type AnalysisPublisher struct {
	mu         sync.Mutex
	ch         Channel
	exchange   string
	routingKey string
}

// NewAnalysisPublisher создаёт издателя событий анализа.
func NewAnalysisPublisher(ch Channel, exchange, routingKey string) *AnalysisPublisher {
	return &AnalysisPublisher{
		ch:         ch,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

// PublishAnalysis публикует событие о сохранённом анализе.
func (p *AnalysisPublisher) PublishAnalysis(ctx context.Context, analysis models.Analysis) error {
	const op = "rabbitmq.PublishAnalysis"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	event := AnalysisCreated{
		ID:         analysis.ID,
		UserUID:    analysis.UserUID,
		Prediction: analysis.Prediction,
		Confidence: analysis.Confidence,
		AnalyzedAt: analysis.AnalyzedAt,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := PublishMessage(p.ch, p.exchange, p.routingKey, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
