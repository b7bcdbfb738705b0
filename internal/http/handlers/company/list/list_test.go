package list

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (m *ServiceMock) List(ctx context.Context, actor *models.Actor) ([]*models.Company, error) {
	args := m.Called(ctx, actor)
	c, _ := args.Get(0).([]*models.Company)
	return c, args.Error(1)
}

func TestListHandler(t *testing.T) {
	t.Run("superadmin", func(t *testing.T) {
		actor := &models.Actor{ID: "sa", Role: models.RoleSuperAdmin}
		svc := new(ServiceMock)
		svc.On("List", mock.Anything, actor).Return([]*models.Company{{ID: "c1", Name: "Alpha"}, {ID: "c2", Name: "Beta"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/companies", nil)
		req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
		rec := httptest.NewRecorder()
		New(sl.Discard(), svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Data []models.Company `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got.Data, 2)
		assert.Equal(t, "Alpha", got.Data[0].Name)
		svc.AssertExpectations(t)
	})

	t.Run("manager forbidden", func(t *testing.T) {
		actor := &models.Actor{ID: "m1", Role: models.RoleManager, CompanyID: "c1"}
		svc := new(ServiceMock)
		svc.On("List", mock.Anything, actor).Return(nil, apperr.Forbidden("insufficient role")).Once()

		req := httptest.NewRequest(http.MethodGet, "/companies", nil)
		req = req.WithContext(middlewarectx.WithActor(req.Context(), actor))
		rec := httptest.NewRecorder()
		New(sl.Discard(), svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertExpectations(t)
	})
}
