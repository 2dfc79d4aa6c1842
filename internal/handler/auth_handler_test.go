package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.User, string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_ValidationCollectsAllViolations(t *testing.T) {
	mockService := new(MockAuthService)
	h := NewAuthHandler(mockService)

	// Missing password AND too-short fullName: both must be reported.
	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"not-an-email","fullName":"ab"}`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	resp, ok := httpErr.Message.(errors.ValidationResponse)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Len(t, resp.Fields, 3)

	// No user may be persisted for an invalid payload.
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_DuplicateHandle(t *testing.T) {
	mockService := new(MockAuthService)
	mockService.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).
		Return(nil, "", errors.ErrDuplicateHandle)
	h := NewAuthHandler(mockService)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"taken@example.com","password":"password123","fullName":"Test Writer"}`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_Login(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful login",
			body: `{"email":"writer@example.com","password":"password123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "writer@example.com", "password123").
					Return(&model.User{ID: userID, Email: "writer@example.com"}, "signed-token", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"email":"writer@example.com","password":"wrong-pass"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "writer@example.com", "wrong-pass").
					Return(nil, "", errors.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			body: `{"email":"nobody@example.com","password":"password123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "nobody@example.com", "password123").
					Return(nil, "", errors.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)
			h := NewAuthHandler(mockService)

			c, rec := newTestContext(t, http.MethodPost, "/auth/login", tt.body)
			err := h.Login(c)

			if tt.expectedStatus == http.StatusOK {
				assert.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), "signed-token")
				assert.NotContains(t, rec.Body.String(), "passwordHash")
			} else {
				httpErr, ok := err.(*echo.HTTPError)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedStatus, httpErr.Code)
			}

			mockService.AssertExpectations(t)
		})
	}
}
