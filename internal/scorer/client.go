// Package scorer — HTTP-клиент внешнего ML-сервиса, который классифицирует
// текст новости. Клиент делает ровно один запрос без повторов; время запроса
// ограничено таймаутом.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrUnavailable — сервис не ответил вовремя, недоступен или вернул не-2xx статус.
	ErrUnavailable = errors.New("scorer unavailable")
	// ErrInvalidResponse — сервис ответил, но тело ответа нельзя разобрать.
	ErrInvalidResponse = errors.New("invalid scorer response")
)

// maxResponseSize ограничивает размер читаемого ответа.
const maxResponseSize = 1 << 20

// Request — тело запроса к ML-сервису.
type Request struct {
	News string `json:"news"`
}

// Response — ответ ML-сервиса в исходном виде.
//
// Поля хранятся как json.RawMessage: отсутствующее поле даёт пустое значение,
// а null, строка или число сохраняются без приведения типов.
type Response struct {
	Prediction  json.RawMessage `json:"prediction"`
	Probability json.RawMessage `json:"probability"`
	Raw         string          `json:"-"`
}

// Client вызывает POST {baseURL}/predict.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient создаёт клиент ML-сервиса с указанным таймаутом на запрос.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Score отправляет текст на классификацию.
//
// Таймаут, сетевая ошибка и не-2xx статус возвращаются как ErrUnavailable,
// пустое или нечитаемое тело ответа — как ErrInvalidResponse.
func (c *Client) Score(ctx context.Context, text string) (*Response, error) {
	const op = "scorer.Score"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(Request{News: text})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w: unexpected status %s", op, ErrUnavailable, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%s: %w: empty body", op, ErrInvalidResponse)
	}

	var result Response
	if err = json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidResponse, err)
	}
	result.Raw = string(raw)
	return &result, nil
}
