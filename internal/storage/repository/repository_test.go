package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
	"github.com/magabrotheeeer/lesson-scheduler/internal/storage"
)

func TestCompanies(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	created, err := s.CreateCompany(ctx, models.Company{Name: "Acme", Timezone: "Europe/Moscow"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.GetCompanyByName(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.CreateCompany(ctx, models.Company{Name: "acme"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.GetCompany(ctx, uuid.NewString())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetCompany(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsers(t *testing.T) {
	s := setupTestStorage(t)
	f := newTestDataFactory(s)
	ctx := context.Background()

	company := f.company(t, "Acme")
	u := f.user(t, company.ID, "Anna@Example.com")
	assert.Nil(t, u.LastAccessAt)

	got, err := s.GetUserByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.CreateUser(ctx, models.User{
		FirstName: "Dup", LastName: "Dup", Email: "ANNA@example.com", PasswordHash: "x",
	})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.TouchUserAccess(ctx, u.ID, at))
	got, err = s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastAccessAt)
	assert.True(t, at.Equal(*got.LastAccessAt))

	got.Role = models.RoleManager
	got.CompanyID = ""
	updated, err := s.UpdateUser(ctx, *got)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, updated.Role)
	assert.Empty(t, updated.CompanyID)

	assert.ErrorIs(t, s.TouchUserAccess(ctx, uuid.NewString(), at), storage.ErrNotFound)
}

func TestClients(t *testing.T) {
	s := setupTestStorage(t)
	f := newTestDataFactory(s)
	ctx := context.Background()

	company := f.company(t, "Acme")
	c := f.client(t, company.ID, "ivan@example.com", "+70000000001")
	f.client(t, company.ID, "oleg@example.com", "+70000000002")

	emailTaken, phoneTaken, err := s.ClientContactTaken(ctx, "IVAN@example.com", "+79999999999", "")
	require.NoError(t, err)
	assert.True(t, emailTaken)
	assert.False(t, phoneTaken)

	emailTaken, phoneTaken, err = s.ClientContactTaken(ctx, "ivan@example.com", "+70000000001", c.ID)
	require.NoError(t, err)
	assert.False(t, emailTaken)
	assert.False(t, phoneTaken)

	list, err := s.ListClients(ctx, company.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	c.City = "Kazan"
	updated, err := s.UpdateClient(ctx, *c)
	require.NoError(t, err)
	assert.Equal(t, "Kazan", updated.City)

	require.NoError(t, s.RemoveClient(ctx, c.ID))
	assert.ErrorIs(t, s.RemoveClient(ctx, c.ID), storage.ErrNotFound)
}

func TestRemoveClientWithLessons(t *testing.T) {
	s := setupTestStorage(t)
	f := newTestDataFactory(s)

	company := f.company(t, "Acme")
	u := f.user(t, company.ID, "anna@example.com")
	c := f.client(t, company.ID, "ivan@example.com", "+70000000001")
	f.lesson(t, u.ID, c.ID, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), 60)

	err := s.RemoveClient(context.Background(), c.ID)
	assert.ErrorIs(t, err, storage.ErrInUse)
}

func TestLessons(t *testing.T) {
	s := setupTestStorage(t)
	f := newTestDataFactory(s)
	ctx := context.Background()

	acme := f.company(t, "Acme")
	other := f.company(t, "Other")
	u := f.user(t, acme.ID, "anna@example.com")
	c1 := f.client(t, acme.ID, "ivan@example.com", "+70000000001")
	c2 := f.client(t, other.ID, "oleg@example.com", "+70000000002")

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	l2 := f.lesson(t, u.ID, c1.ID, base.Add(2*time.Hour), 60)
	l1 := f.lesson(t, u.ID, c1.ID, base, 60)
	l3 := f.lesson(t, u.ID, c2.ID, base.Add(24*time.Hour), 30)

	got, err := s.GetLesson(ctx, l1.ID)
	require.NoError(t, err)
	assert.True(t, base.Equal(got.Start))
	assert.Equal(t, 60, got.Duration)

	all, err := s.ListLessons(ctx, models.LessonFilter{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{l1.ID, l2.ID, l3.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	byCompany, err := s.ListLessons(ctx, models.LessonFilter{UserID: u.ID, CompanyID: acme.ID})
	require.NoError(t, err)
	assert.Len(t, byCompany, 2)

	start := base.Add(time.Hour)
	end := base.Add(24 * time.Hour)
	windowed, err := s.ListLessons(ctx, models.LessonFilter{ClientID: c1.ID, Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, l2.ID, windowed[0].ID)

	overlap, err := s.ListForOverlap(ctx, uuid.NewString(), c2.ID, base, base.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, overlap, 1)
	assert.Equal(t, l3.ID, overlap[0].ID)

	l1.Duration = 90
	updated, err := s.UpdateLesson(ctx, *l1)
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Duration)

	require.NoError(t, s.RemoveLesson(ctx, l1.ID))
	_, err = s.GetLesson(ctx, l1.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.RemoveLesson(ctx, l1.ID), storage.ErrNotFound)
}

func TestCompaniesUpdateAndList(t *testing.T) {
	s := setupTestStorage(t)
	f := newTestDataFactory(s)
	ctx := context.Background()

	beta := f.company(t, "beta")
	alpha := f.company(t, "Alpha")

	list, err := s.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, alpha.ID, list[0].ID)
	assert.Equal(t, beta.ID, list[1].ID)

	beta.Name = "Gamma"
	beta.Address = "Main st. 1"
	updated, err := s.UpdateCompany(ctx, *beta)
	require.NoError(t, err)
	assert.Equal(t, "Gamma", updated.Name)
	assert.Equal(t, "Main st. 1", updated.Address)

	beta.Name = "ALPHA"
	_, err = s.UpdateCompany(ctx, *beta)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.UpdateCompany(ctx, models.Company{ID: uuid.NewString(), Name: "Nobody"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsersListAndRemove(t *testing.T) {
	s := setupTestStorage(t)
	f := newTestDataFactory(s)
	ctx := context.Background()

	company := f.company(t, "Acme")
	other := f.company(t, "Other")
	teacher := f.user(t, company.ID, "teacher@example.com")
	idle := f.user(t, company.ID, "idle@example.com")
	f.user(t, other.ID, "foreign@example.com")
	client := f.client(t, company.ID, "client@example.com", "+70000000001")
	f.lesson(t, teacher.ID, client.ID, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), 60)

	list, err := s.ListUsers(ctx, company.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, s.RemoveUser(ctx, teacher.ID), storage.ErrInUse)
	require.NoError(t, s.RemoveUser(ctx, idle.ID))
	assert.ErrorIs(t, s.RemoveUser(ctx, idle.ID), storage.ErrNotFound)

	list, err = s.ListUsers(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, teacher.ID, list[0].ID)
}

func TestCheckDatabaseReady(t *testing.T) {
	s := setupTestStorage(t)
	assert.NoError(t, CheckDatabaseReady(context.Background(), s))
}

func TestCanceledContext(t *testing.T) {
	s := &Storage{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetLesson(ctx, uuid.NewString())
	assert.ErrorIs(t, err, context.Canceled)
}
