package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/lesson-scheduler/internal/migrations"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// setupTestStorage поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
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
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(connStr)
	require.NoError(t, err, "failed to create storage")
	t.Cleanup(func() { _ = s.Close() })

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(s.DB, migrationsPath))

	return s
}

// testDataFactory создаёт связанные тестовые записи.
type testDataFactory struct {
	storage *Storage
}

func newTestDataFactory(s *Storage) *testDataFactory {
	return &testDataFactory{storage: s}
}

func (f *testDataFactory) company(t *testing.T, name string) *models.Company {
	t.Helper()
	c, err := f.storage.CreateCompany(context.Background(), models.Company{Name: name})
	require.NoError(t, err)
	return c
}

func (f *testDataFactory) user(t *testing.T, companyID, email string) *models.User {
	t.Helper()
	u, err := f.storage.CreateUser(context.Background(), models.User{
		CompanyID:    companyID,
		FirstName:    "Anna",
		LastName:     "Petrova",
		Email:        email,
		PasswordHash: "hash",
		Role:         models.RoleMember,
		Status:       models.StatusActive,
	})
	require.NoError(t, err)
	return u
}

func (f *testDataFactory) client(t *testing.T, companyID, email, phone string) *models.Client {
	t.Helper()
	c, err := f.storage.CreateClient(context.Background(), models.Client{
		CompanyID: companyID,
		FirstName: "Ivan",
		LastName:  "Ivanov",
		Email:     email,
		Phone:     phone,
	})
	require.NoError(t, err)
	return c
}

func (f *testDataFactory) lesson(t *testing.T, userID, clientID string, start time.Time, duration int) *models.Lesson {
	t.Helper()
	l, err := f.storage.CreateLesson(context.Background(), models.Lesson{
		Name:     "Lesson",
		ClientID: clientID,
		UserID:   userID,
		Start:    start,
		Duration: duration,
		Type:     models.LessonTypeLesson,
		Mood:     models.MoodNeutral,
	})
	require.NoError(t, err)
	return l
}
