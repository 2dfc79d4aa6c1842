package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"inkwell/internal/errors"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := service.Issue(userID, "writer@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "writer@example.com", claims.Email)
}

func TestJWTService_Verify_InvalidTokens(t *testing.T) {
	service := NewJWTService("test-secret")
	userID := uuid.New()

	expired := func() string {
		claims := &Claims{
			UserID: userID,
			Email:  "writer@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		assert.NoError(t, err)
		return token
	}()

	otherSecret := func() string {
		token, err := NewJWTService("other-secret").Issue(userID, "writer@example.com")
		assert.NoError(t, err)
		return token
	}()

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed token", token: "not-a-token"},
		{name: "empty token", token: ""},
		{name: "expired token", token: expired},
		{name: "wrong signing secret", token: otherSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, errors.ErrInvalidToken)
		})
	}
}
