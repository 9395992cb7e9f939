package authutils

import (
	"context"
	"testing"
	"time"

	"streetsaga-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims models.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(userID uuid.UUID) models.Claims {
	return models.Claims{
		UserID: userID,
		Roles:  []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	_, err := NewJWTVerifier("", zap.NewNop())
	assert.Error(t, err)
}

func TestVerifyToken_Valid(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)

	userID := uuid.New()
	tokenString := signToken(t, testSecret, validClaims(userID))

	claims, err := verifier.VerifyToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"user"}, claims.Roles)
}

func TestVerifyToken_Expired(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)

	claims := validClaims(uuid.New())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	tokenString := signToken(t, testSecret, claims)

	_, err = verifier.VerifyToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, models.ErrTokenExpired)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)

	tokenString := signToken(t, "some-other-secret", validClaims(uuid.New()))

	_, err = verifier.VerifyToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestVerifyToken_Malformed(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)

	_, err = verifier.VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

func TestVerifyToken_MissingUserID(t *testing.T) {
	verifier, err := NewJWTVerifier(testSecret, zap.NewNop())
	require.NoError(t, err)

	claims := validClaims(uuid.Nil)
	tokenString := signToken(t, testSecret, claims)

	_, err = verifier.VerifyToken(context.Background(), tokenString)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}
