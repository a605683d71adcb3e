package middleware

import (
	"net/http"
	"strings"

	"rewear-service/pkg/jwtutil"
	"rewear-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const claimsContextKey = "session_claims"

// AuthMiddleware validates the session token and stores the resolved claims
// in the request context. Requests without a valid, unexpired token are
// rejected with 401.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		claims := resolveBearer(c)
		if claims == nil {
			log.Warn("Missing or invalid session token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		c.Set(claimsContextKey, claims)
		log.Debug("Request authenticated",
			zap.Uint("user_id", claims.UserID),
			zap.String("role", claims.Role))
		return next(c)
	}
}

// OptionalAuthMiddleware resolves claims when a valid token is present and
// treats everything else as anonymous.
func OptionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims := resolveBearer(c); claims != nil {
			c.Set(claimsContextKey, claims)
		}
		return next(c)
	}
}

// ClaimsFromContext retrieves the resolved session claims from the context.
// Returns nil for anonymous requests.
func ClaimsFromContext(c echo.Context) *jwtutil.SessionClaims {
	claims, ok := c.Get(claimsContextKey).(*jwtutil.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// resolveBearer extracts and resolves a Bearer token. Any failure resolves
// to nil, never to a partial identity.
func resolveBearer(c echo.Context) *jwtutil.SessionClaims {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	return jwtutil.ResolveToken(parts[1])
}
