package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/fakenews-detector/internal/migrations"
	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

// TestDataFactory создаёт тестовые данные напрямую в БД.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создаёт новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создаёт тестового пользователя и возвращает его UID.
func (f *TestDataFactory) CreateUser(t *testing.T, name, email string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3) RETURNING uid`,
		name, email, "hashedpassword").Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateAnalysis создаёт тестовую запись анализа.
func (f *TestDataFactory) CreateAnalysis(t *testing.T, userUID, text string, analyzedAt time.Time) int64 {
	id, err := f.storage.CreateAnalysis(context.Background(), models.Analysis{
		UserUID:    userUID,
		NewsText:   text,
		Prediction: models.PredictionFake,
		Confidence: 0.5,
		AnalyzedAt: analyzedAt,
	})
	require.NoError(t, err)
	return id
}

// countAnalyses возвращает количество анализов пользователя.
func countAnalyses(t *testing.T, s *Storage, userUID string) int {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM analyses WHERE user_uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	return count
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
