package services_test

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"inventory/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_IssueToken(t *testing.T) {
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(testJWTSecret)

	token, err := authService.IssueToken("front-desk")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "front-desk", claims["sub"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), int64(exp), 5)

	// Subject is required
	_, err = authService.IssueToken("")
	assert.Error(t, err)
}

func TestAuthService_ValidateToken(t *testing.T) {
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(testJWTSecret)

	// Test invalid token
	_, err := authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token signed with another secret
	other, err := services.NewAuthService("another_secret").IssueToken("front-desk")
	require.NoError(t, err)
	_, err = authService.ValidateToken(other)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "front-desk",
		"exp": jwt.TimeFunc().Add(-time.Hour).Unix(), // Expired 1 hour ago
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test token without a subject
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	anonymousString, _ := anonymous.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(anonymousString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing subject")
}
