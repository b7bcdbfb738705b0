package create

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

func (m *ServiceMock) Create(ctx context.Context, actor *models.Actor, in models.NewUserInput) (*models.User, error) {
	args := m.Called(ctx, actor, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	actor := &models.Actor{ID: "m1", Role: models.RoleManager, CompanyID: "c1"}
	body := `{"company_id":"c1","first_name":"Anna","last_name":"Petrova","email":"anna@example.com","password":"secret1","role":2}`

	t.Run("role above own rejected", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Create", mock.Anything, actor, mock.MatchedBy(func(in models.NewUserInput) bool {
			return in.Role != nil && *in.Role == models.RoleSuperAdmin
		})).Return(nil, apperr.Forbidden("cannot assign a role above your own"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
		New(sl.Discard(), svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("created without password hash in body", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Create", mock.Anything, actor, mock.Anything).
			Return(&models.User{ID: "u2", Email: "anna@example.com", PasswordHash: "hashed"}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
		New(sl.Discard(), svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "hashed")
	})
}
