package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listkeeper/internal/server/session"
)

const (
	// SessionTokenContextKey is the key to retrieve the session token from echo.Context.
	SessionTokenContextKey = "session_token"
	// SessionCookieName is the name of the cookie carrying the session token.
	SessionCookieName = "listkeeper_session"
)

// ViewState binds a view-state session token to every request.
// A missing or blank cookie gets a fresh random token.
func ViewState() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string

			cookie, err := c.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token = session.SecureToken(24)
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(SessionTokenContextKey, token)
			return next(c)
		}
	}
}
