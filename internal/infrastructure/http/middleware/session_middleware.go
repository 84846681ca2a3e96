package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// SessionIDKey is the echo context key holding the session id
	SessionIDKey = "session_id"
	// SessionHeader lets API clients pick their session without cookies
	SessionHeader = "X-Session-ID"
)

// SessionConfig configures the session cookie
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// EchoSession returns an Echo middleware that binds each client to a
// session id. The id comes from the X-Session-ID header or the session
// cookie; a fresh uuid is issued when neither holds a valid one.
func EchoSession(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.CookieName == "" {
		cfg.CookieName = "sid"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(SessionHeader)
			if !validID(id) {
				id = ""
				if cookie, err := c.Cookie(cfg.CookieName); err == nil && validID(cookie.Value) {
					id = cookie.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			// Refresh the cookie so its lifetime follows the store TTL
			c.SetCookie(&http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Response().Header().Set(SessionHeader, id)
			c.Set(SessionIDKey, id)
			return next(c)
		}
	}
}

// GetSessionID returns the session id set by EchoSession
func GetSessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(SessionIDKey).(string)
	return id, ok && id != ""
}

func validID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
