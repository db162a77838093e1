package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/careloop/health-blog/backend/internal/middleware"
	"github.com/careloop/health-blog/backend/internal/models"
	"github.com/careloop/health-blog/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// sessionClaims returns the validated session claims placed on the context by
// the auth middleware, or nil outside an authenticated route.
func sessionClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(middleware.ContextClaimsKey).(*models.JwtCustomClaims)
	return claims
}

// currentUser resolves the full account for the session. The policy reads the
// account record, not the token, so capability flags are always fresh.
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	claims := sessionClaims(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not signed in")
	}
	user, err := users.GetUserByID(claims.UserID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not signed in")
	}
	return user, nil
}

// flashRedirect sends the caller to path with a human-readable error message.
// User-facing failures are always a redirect plus a message, never a bare
// status page.
func flashRedirect(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusFound, path+"?error="+url.QueryEscape(msg))
}

// successRedirect is flashRedirect for the happy path.
func successRedirect(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusFound, path+"?message="+url.QueryEscape(msg))
}

// setSessionCookie attaches the session token to the response.
func setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie invalidates the session on the client.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
