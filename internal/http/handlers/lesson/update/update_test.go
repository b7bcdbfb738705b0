package update

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Update(ctx context.Context, actor *models.Actor, id string, input models.LessonInput) (*models.Lesson, error) {
	args := m.Called(ctx, actor, id, input)
	l, _ := args.Get(0).(*models.Lesson)
	return l, args.Error(1)
}

func serve(svc Service, actor *models.Actor, id string, body []byte) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Put("/lessons/{id}", New(sl.Discard(), svc).ServeHTTP)

	req := httptest.NewRequest(http.MethodPut, "/lessons/"+id, bytes.NewReader(body))
	req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpdateHandler(t *testing.T) {
	actor := &models.Actor{ID: "u1", Role: models.RoleMember, CompanyID: "c1"}
	body := []byte(`{"name":"Yoga","client_id":"cl1","user_id":"u1","start":"2025-05-01T10:00:00Z","duration":90}`)

	t.Run("updated", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Update", mock.Anything, actor, "l1", mock.MatchedBy(func(in models.LessonInput) bool {
			return in.Duration == 90
		})).Return(&models.Lesson{ID: "l1", Duration: 90}, nil)

		rec := serve(svc, actor, "l1", body)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"duration":90`)
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Update", mock.Anything, actor, "missing", mock.Anything).
			Return(nil, apperr.NotFound("lesson not found"))

		rec := serve(svc, actor, "missing", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		svc := new(ServiceMock)
		rec := serve(svc, actor, "l1", []byte("[]x"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Update")
	})
}
