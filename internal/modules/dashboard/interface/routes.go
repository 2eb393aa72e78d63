package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/infrastructure"
)

// Routes bundles what RegisterRoutes needs.
type Routes struct {
	Dashboards *usecase.DashboardUseCase
	Bookings   *usecase.BookingUseCase
	Live       *usecase.LiveRefresh
	Hub        *infrastructure.Hub
	SendBuffer int
	// RateLimit guards mutating routes. Nil disables it.
	RateLimit echo.MiddlewareFunc
	// Events is mounted at POST /events only when EventsKey is set.
	Events    EventSink
	EventsKey string
}

func RegisterRoutes(e *echo.Echo, r Routes) {
	mapper := NewErrorMapper()
	dashboards := NewDashboardHandler(r.Dashboards, mapper)
	bookings := NewBookingHandler(r.Bookings, mapper)

	mutating := []echo.MiddlewareFunc{}
	if r.RateLimit != nil {
		mutating = append(mutating, r.RateLimit)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "clients": r.Hub.Clients(), "watching": r.Live.Watching()})
	})

	if r.Events != nil && r.EventsKey != "" {
		e.POST("/events", NewEventsHTTPHandler(r.Events, r.EventsKey))
	}

	api := e.Group("", WithSession())
	api.GET("/dashboards", dashboards.List)
	api.GET("/notices", dashboards.Notices)
	api.DELETE("/notices/:id", dashboards.DismissNotice)
	api.POST("/bookings", bookings.Submit, mutating...)

	dash := api.Group("/dashboards/:dashboard", RequireDashboard(r.Dashboards, mapper))
	dash.GET("", dashboards.Load)
	dash.GET("/panels/:panel", dashboards.Panel)
	dash.GET("/charts/:chart", dashboards.Chart)
	dash.GET("/reports/:report", dashboards.Report)
	dash.PUT("/state", dashboards.UpdateState)
	dash.POST("/actions/:action", dashboards.Action, mutating...)

	api.GET("/ws/dashboards/:dashboard", NewWebsocketHandler(r.Hub, r.Dashboards, r.Live, r.SendBuffer), RequireDashboard(r.Dashboards, mapper))
}
