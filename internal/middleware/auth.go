package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"streetsaga-server/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TokenVerifier verifies a bearer token string and returns its claims.
// Errors may be models.ErrTokenInvalid, models.ErrTokenExpired,
// models.ErrTokenMalformed and so on.
type TokenVerifier func(ctx context.Context, tokenString string) (*models.Claims, error)

// Echo context keys populated by Auth.
const (
	UserIDKey = "userID"
	RolesKey  = "userRoles"
)

// Auth builds an echo middleware that extracts the bearer token, verifies it
// and stores the user id and roles on the request context.
func Auth(verifier TokenVerifier, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.With(zap.String("path", c.Request().URL.Path))

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Authorization header missing")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Missing token")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Malformed Authorization header")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Malformed token header")
			}
			tokenString := parts[1]

			claims, err := verifier(c.Request().Context(), tokenString)
			if err != nil {
				status := http.StatusUnauthorized
				msg := "Unauthorized: Invalid token"
				switch {
				case errors.Is(err, models.ErrTokenExpired):
					msg = "Unauthorized: Token expired"
				case errors.Is(err, models.ErrTokenMalformed), errors.Is(err, models.ErrTokenInvalid):
					// same message for malformed and invalid tokens
				default:
					log.Error("Unexpected token verification error", zap.Error(err))
					status = http.StatusInternalServerError
					msg = "Internal server error during token verification"
				}
				log.Warn("Token verification failed", zap.Error(err), zap.String("tokenSnippet", snippet(tokenString)))
				return echo.NewHTTPError(status, msg)
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(RolesKey, claims.Roles)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by Auth.
func UserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	return id, nil
}

func snippet(tokenString string) string {
	if len(tokenString) > 10 {
		return tokenString[:10] + "..."
	}
	return tokenString
}
