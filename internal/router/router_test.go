package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"rollbook/internal/auth"
	"rollbook/internal/config"
	"rollbook/internal/handler"
	"rollbook/internal/model"
	"rollbook/internal/service"
)

// stubStudentService returns fixed values so the auth middleware and routing
// can be exercised without a database.
type stubStudentService struct{}

func (stubStudentService) ListStudents(ctx context.Context, ownerID uint) ([]model.Student, error) {
	return []model.Student{}, nil
}

func (stubStudentService) GetStudent(ctx context.Context, ownerID uint, id uuid.UUID) (*model.Student, error) {
	return &model.Student{ID: id, CreatedBy: ownerID}, nil
}

func (stubStudentService) CreateStudent(ctx context.Context, ownerID uint, student *model.Student) (*model.Student, error) {
	return student, nil
}

func (stubStudentService) UpdateStudent(ctx context.Context, ownerID uint, id uuid.UUID, update service.StudentUpdate) (*model.Student, error) {
	return &model.Student{ID: id, CreatedBy: ownerID}, nil
}

func (stubStudentService) DeleteStudent(ctx context.Context, ownerID uint, id uuid.UUID) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	return &model.User{Email: email, Name: name}, nil
}

func (stubAuthService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	return "", "", nil, service.ErrInvalidCredentials
}

func (stubAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return "", service.ErrInvalidRefreshToken
}

func (stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

func newTestRouter(cfg *config.Config) *echo.Echo {
	e := echo.New()
	Register(e, cfg, handler.NewAuthHandler(stubAuthService{}), handler.NewStudentHandler(stubStudentService{}))
	return e
}

func TestSecuredRoutes_BearerToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	e := newTestRouter(cfg)

	token, err := auth.NewJWTService(cfg.JWTSecret).GenerateAccessToken(1, "test@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{
			name:         "bearer token reaches the handler",
			header:       "Bearer " + token,
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing token is rejected",
			header:       "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "unprefixed token is rejected",
			header:       token,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "garbage token is rejected",
			header:       "Bearer not-a-jwt",
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"invalid or missing token"}`, rec.Body.String())
			}
		})
	}
}

func TestPublicRoutes_NoTokenRequired(t *testing.T) {
	e := newTestRouter(&config.Config{JWTSecret: "test-secret"})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
