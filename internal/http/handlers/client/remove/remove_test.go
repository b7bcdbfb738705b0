package remove

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

func (m *ServiceMock) Delete(ctx context.Context, actor *models.Actor, id string) (*models.Client, error) {
	args := m.Called(ctx, actor, id)
	c, _ := args.Get(0).(*models.Client)
	return c, args.Error(1)
}

func TestRemoveHandler(t *testing.T) {
	actor := &models.Actor{ID: "u1", Role: models.RoleManager, CompanyID: "c1"}

	for _, tt := range []struct {
		name       string
		client     *models.Client
		err        error
		wantStatus int
	}{
		{"removed", &models.Client{ID: "cl1"}, nil, http.StatusOK},
		{"has lessons", nil, apperr.Validation("client has scheduled lessons"), http.StatusUnprocessableEntity},
	} {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Delete", mock.Anything, actor, "cl1").Return(tt.client, tt.err)

			r := chi.NewRouter()
			r.Delete("/clients/{id}", New(sl.Discard(), svc).ServeHTTP)
			req := httptest.NewRequest(http.MethodDelete, "/clients/cl1", nil)
			req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
