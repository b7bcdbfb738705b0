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

func (m *ServiceMock) Create(ctx context.Context, actor *models.Actor, in models.CompanyInput) (*models.Company, error) {
	args := m.Called(ctx, actor, in)
	c, _ := args.Get(0).(*models.Company)
	return c, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	admin := &models.Actor{ID: "a1", Role: models.RoleSuperAdmin}
	manager := &models.Actor{ID: "m1", Role: models.RoleManager, CompanyID: "c1"}

	svc := new(ServiceMock)
	svc.On("Create", mock.Anything, admin, models.CompanyInput{Name: "Acme"}).
		Return(&models.Company{ID: "c2", Name: "Acme"}, nil)
	svc.On("Create", mock.Anything, manager, models.CompanyInput{Name: "Acme"}).
		Return(nil, apperr.Forbidden("only super admin can create companies"))

	for _, tt := range []struct {
		actor      *models.Actor
		wantStatus int
	}{
		{admin, http.StatusCreated},
		{manager, http.StatusForbidden},
	} {
		req := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(`{"name":"Acme"}`))
		req = req.WithContext(middlewarectx.WithActor(req.Context(), tt.actor))
		rec := httptest.NewRecorder()
		New(sl.Discard(), svc).ServeHTTP(rec, req)
		assert.Equal(t, tt.wantStatus, rec.Code)
	}
	svc.AssertExpectations(t)
}
