package scorer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Score(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		wantErr         error
		wantPrediction  string
		wantProbability string
	}{
		{
			name:            "real news",
			status:          http.StatusOK,
			body:            `{"prediction":"true","probability":0.87}`,
			wantPrediction:  `"true"`,
			wantProbability: `0.87`,
		},
		{
			name:            "fake news",
			status:          http.StatusOK,
			body:            `{"prediction":"false","probability":0.2}`,
			wantPrediction:  `"false"`,
			wantProbability: `0.2`,
		},
		{
			name:            "missing probability is kept empty",
			status:          http.StatusOK,
			body:            `{"prediction":"true"}`,
			wantPrediction:  `"true"`,
			wantProbability: ``,
		},
		{
			name:            "null prediction is kept as raw null",
			status:          http.StatusOK,
			body:            `{"prediction":null,"probability":0.5}`,
			wantPrediction:  `null`,
			wantProbability: `0.5`,
		},
		{
			name:    "scorer rejects input",
			status:  http.StatusBadRequest,
			body:    `{"error":"No news text provided"}`,
			wantErr: ErrUnavailable,
		},
		{
			name:    "scorer internal error",
			status:  http.StatusInternalServerError,
			body:    ``,
			wantErr: ErrUnavailable,
		},
		{
			name:    "empty body",
			status:  http.StatusOK,
			body:    ``,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `<html>oops</html>`,
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/predict", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req Request
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "breaking news", req.News)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL+"/", time.Second)
			got, err := client.Score(context.Background(), "breaking news")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrediction, string(got.Prediction))
			assert.Equal(t, tt.wantProbability, string(got.Probability))
			assert.Equal(t, tt.body, got.Raw)
		})
	}
}

func TestClient_Score_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, 50*time.Millisecond)

	start := time.Now()
	got, err := client.Score(context.Background(), "slow news")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_Score_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	got, err := NewClient(url, time.Second).Score(context.Background(), "news")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
}
