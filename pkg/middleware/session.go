package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/video-summarizer/errors"
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/common"
	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	httpMiddleware "github.com/johnquangdev/video-summarizer/internal/infrastructure/http/middleware"
	sessionUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/session"
)

// SessionKey is the echo context key holding the loaded entities.Session
const SessionKey = "session"

// LoadSession middleware: load the session context bound to the request
func LoadSession(sessions sessionUsecase.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := httpMiddleware.GetSessionID(c)
			if !ok {
				return respond(c, errors.ErrSessionFailed("load", nil))
			}
			sess, err := sessions.Load(c.Request().Context(), id)
			if err != nil {
				return respond(c, errors.ErrSessionFailed("load", err))
			}
			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// RequireActiveTranscript middleware: only allow requests whose session
// has an active transcript
func RequireActiveTranscript() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := GetSession(c)
			if !ok || !sess.HasTranscript() {
				return respond(c, errors.ErrNoActiveTranscript())
			}
			return next(c)
		}
	}
}

// GetSession returns the session loaded by LoadSession
func GetSession(c echo.Context) (entities.Session, bool) {
	sess, ok := c.Get(SessionKey).(entities.Session)
	return sess, ok
}

func respond(c echo.Context, appErr errors.AppError) error {
	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}
	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
	})
}
