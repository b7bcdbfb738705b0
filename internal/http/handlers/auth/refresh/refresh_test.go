package refresh

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Refresh(refreshToken string) (*models.Actor, jwt.TokenPair, error) {
	args := m.Called(refreshToken)
	a, _ := args.Get(0).(*models.Actor)
	return a, args.Get(1).(jwt.TokenPair), args.Error(2)
}

func TestRefreshHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		actor      *models.Actor
		err        error
		call       bool
		wantStatus int
	}{
		{"refreshed", `{"refresh_token":"r1"}`, &models.Actor{ID: "u1"}, nil, true, http.StatusOK},
		{"access token used as refresh", `{"refresh_token":"r1"}`, nil, apperr.Authentication("invalid token"), true, http.StatusUnauthorized},
		{"empty token", `{}`, nil, nil, false, http.StatusUnprocessableEntity},
		{"bad json", `{`, nil, nil, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.call {
				svc.On("Refresh", "r1").Return(tt.actor, jwt.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, tt.err).Once()
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(tt.body))
			New(sl.Discard(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"access_token":"a2"`)
			}
			svc.AssertExpectations(t)
		})
	}
}
