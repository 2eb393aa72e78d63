package transport

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/platform/ratelimit"
	"goldenPalmDash/internal/shared/auth"
)

const (
	sessionKey   = "session"
	dashboardKey = "dashboard"
)

// readSession builds the caller's session from the client store it forwards.
// Websocket upgrades may carry both values in the query string.
func readSession(c echo.Context) domain.Session {
	req := c.Request()
	token := auth.ExtractToken(req)
	userInfo := auth.ExtractUserInfo(req)
	if token == "" {
		token = strings.TrimSpace(c.QueryParam(auth.TokenKey))
	}
	if userInfo == "" {
		userInfo = strings.TrimSpace(c.QueryParam(auth.UserInfoKey))
	}
	session, err := domain.NewSession(token, userInfo)
	if err != nil {
		slog.Warn("ignoring malformed userInfo", slog.String("path", c.Path()), slog.Any("error", err))
	}
	return session
}

// WithSession reads the session once per request.
func WithSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := readSession(c)
			c.Set(sessionKey, session)
			if session.ID != "" {
				c.Set(ratelimit.UserKey, session.ID)
			}
			return next(c)
		}
	}
}

func sessionOf(c echo.Context) domain.Session {
	if s, ok := c.Get(sessionKey).(domain.Session); ok {
		return s
	}
	return readSession(c)
}

func dashboardOf(c echo.Context) *usecase.Dashboard {
	d, _ := c.Get(dashboardKey).(*usecase.Dashboard)
	return d
}

// RequireDashboard resolves :dashboard and runs the session guard. A denied request
// never reaches a handler, and so never reaches the backend.
func RequireDashboard(uc *usecase.DashboardUseCase, mapper *ErrorMapper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			dash, err := uc.Authorize(sessionOf(c), c.Param("dashboard"))
			if err != nil {
				return mapper.Respond(c, err)
			}
			c.Set(dashboardKey, dash)
			return next(c)
		}
	}
}

// denied answers with 403, the decision body and a Refresh header pointing at the login page.
func denied(c echo.Context, decision usecase.Decision) error {
	seconds := math.Max(0, decision.RedirectAfter.Seconds())
	c.Response().Header().Set("Refresh", strconv.FormatFloat(seconds, 'f', -1, 64)+"; url="+decision.RedirectTo)
	return c.JSON(http.StatusForbidden, decision)
}
