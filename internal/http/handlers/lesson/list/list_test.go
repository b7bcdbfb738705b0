package list

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListForUser(ctx context.Context, actor *models.Actor, filter models.LessonFilter) ([]*models.Lesson, error) {
	args := m.Called(ctx, actor, filter)
	l, _ := args.Get(0).([]*models.Lesson)
	return l, args.Error(1)
}

func (m *ServiceMock) ListForClient(ctx context.Context, actor *models.Actor, filter models.LessonFilter) ([]*models.Lesson, error) {
	args := m.Called(ctx, actor, filter)
	l, _ := args.Get(0).([]*models.Lesson)
	return l, args.Error(1)
}

func router(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/lessons", NewForUser(sl.Discard(), svc).ServeHTTP)
	r.Get("/clients/{id}/lessons", NewForClient(sl.Discard(), svc).ServeHTTP)
	return r
}

func do(h http.Handler, actor *models.Actor, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListForUser(t *testing.T) {
	actor := &models.Actor{ID: "admin", Role: models.RoleSuperAdmin, CompanyID: "c1"}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	svc := new(ServiceMock)
	svc.On("ListForUser", mock.Anything, actor, mock.MatchedBy(func(f models.LessonFilter) bool {
		return f.UserID == "u2" && f.Start != nil && f.Start.Equal(start) && f.End != nil && f.End.Equal(end)
	})).Return([]*models.Lesson{{ID: "l1"}, {ID: "l2"}}, nil)

	q := url.Values{}
	q.Set("user", "u2")
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	rec := do(router(svc), actor, "/lessons?"+q.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []models.Lesson `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	svc.AssertExpectations(t)
}

func TestListForUserEmpty(t *testing.T) {
	actor := &models.Actor{ID: "u1", Role: models.RoleMember, CompanyID: "c1"}
	svc := new(ServiceMock)
	svc.On("ListForUser", mock.Anything, actor, models.LessonFilter{}).Return(nil, nil)

	rec := do(router(svc), actor, "/lessons")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":[]}`, rec.Body.String())
}

func TestListBadDate(t *testing.T) {
	actor := &models.Actor{ID: "u1", Role: models.RoleMember}
	svc := new(ServiceMock)

	rec := do(router(svc), actor, "/lessons?start=yesterday")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start must be RFC3339")

	rec = do(router(svc), actor, "/clients/cl1/lessons?end=2025-13-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListForUser")
	svc.AssertNotCalled(t, "ListForClient")
}

func TestListForClient(t *testing.T) {
	actor := &models.Actor{ID: "u1", Role: models.RoleMember, CompanyID: "c1"}

	t.Run("ok", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("ListForClient", mock.Anything, actor, models.LessonFilter{ClientID: "cl1"}).
			Return([]*models.Lesson{{ID: "l1"}}, nil)

		rec := do(router(svc), actor, "/clients/cl1/lessons")
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("ListForClient", mock.Anything, actor, mock.Anything).
			Return(nil, apperr.Forbidden("client belongs to another company"))

		rec := do(router(svc), actor, "/clients/other/lessons")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
