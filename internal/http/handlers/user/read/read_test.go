package read

import (
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

func (m *ServiceMock) Get(ctx context.Context, actor *models.Actor, id string) (*models.User, error) {
	args := m.Called(ctx, actor, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	actor := &models.Actor{ID: "u1", Role: models.RoleMember, CompanyID: "c1"}

	svc := new(ServiceMock)
	svc.On("Get", mock.Anything, actor, "u1").Return(&models.User{ID: "u1", Email: "anna@example.com"}, nil)
	svc.On("Get", mock.Anything, actor, "u9").Return(nil, apperr.NotFound("user not found"))

	r := chi.NewRouter()
	r.Get("/users/{id}", New(sl.Discard(), svc).ServeHTTP)

	for id, want := range map[string]int{"u1": http.StatusOK, "u9": http.StatusNotFound} {
		req := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
		req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, id)
	}
}
