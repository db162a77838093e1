package middleware

import (
	"net/http"
	"strings"

	"github.com/careloop/health-blog/backend/internal/auth"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// ContextClaimsKey is where validated claims are stored on the echo context.
const ContextClaimsKey = "claims"

// SessionAuth checks for a valid session token and puts its claims on the
// context. The token is read from the session cookie, or from a Bearer
// Authorization header for non-browser clients. Requests without a valid
// session are sent to the login page.
func SessionAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.Redirect(http.StatusFound, "/login")
			}

			claims, err := auth.ParseToken(raw, jwtSecret)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(ContextClaimsKey, claims)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	// Expecting "Bearer <token>"
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
