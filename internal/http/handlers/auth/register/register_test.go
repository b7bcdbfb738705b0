package register

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/apperr"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/jwt"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

type RegistrarMock struct {
	mock.Mock
}

func (m *RegistrarMock) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type TokenIssuerMock struct {
	mock.Mock
}

func (m *TokenIssuerMock) IssueTokens(actor *models.Actor) (jwt.TokenPair, error) {
	args := m.Called(actor)
	return args.Get(0).(jwt.TokenPair), args.Error(1)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	const body = `{"company_name":"Acme","first_name":"Anna","last_name":"Petrova","email":"anna@example.com","password":"password123"}`
	in := models.RegisterInput{
		CompanyName: "Acme",
		FirstName:   "Anna",
		LastName:    "Petrova",
		Email:       "anna@example.com",
		Password:    "password123",
	}
	registered := &models.User{ID: "u1", CompanyID: "c1", Email: "anna@example.com", Role: models.RoleManager}

	tests := []struct {
		name       string
		body       string
		setup      func(reg *RegistrarMock, tokens *TokenIssuerMock)
		wantStatus int
		wantError  string
	}{
		{
			name: "registered",
			body: body,
			setup: func(reg *RegistrarMock, tokens *TokenIssuerMock) {
				reg.On("Register", mock.Anything, in).Return(registered, nil).Once()
				tokens.On("IssueTokens", registered.Actor()).
					Return(jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid json body",
			body:       "not a json",
			setup:      func(*RegistrarMock, *TokenIssuerMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name: "email taken",
			body: body,
			setup: func(reg *RegistrarMock, _ *TokenIssuerMock) {
				reg.On("Register", mock.Anything, in).Return(nil, apperr.Validation("email already in use")).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "email already in use",
		},
		{
			name: "token issue failure",
			body: body,
			setup: func(reg *RegistrarMock, tokens *TokenIssuerMock) {
				reg.On("Register", mock.Anything, in).Return(registered, nil).Once()
				tokens.On("IssueTokens", mock.Anything).Return(jwt.TokenPair{}, errors.New("sign failed")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, tokens := new(RegistrarMock), new(TokenIssuerMock)
			tt.setup(reg, tokens)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			New(sl.Discard(), reg, tokens).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "access", data["access_token"])
				assert.Equal(t, "refresh", data["refresh_token"])
			}
			reg.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestRegistrarFunc(t *testing.T) {
	var got models.RegisterInput
	f := RegistrarFunc(func(_ context.Context, in models.RegisterInput) (*models.User, error) {
		got = in
		return &models.User{ID: "u1"}, nil
	})

	u, err := f.Register(context.Background(), models.RegisterInput{Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "a@b.c", got.Email)
}
