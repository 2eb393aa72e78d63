package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/modules/dashboard/infrastructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type dismissPayload struct {
	ID string `json:"id"`
}

// NewWebsocketHandler serves /ws/dashboards/:dashboard. It runs behind RequireDashboard,
// so only admitted sessions are upgraded.
func NewWebsocketHandler(
	hub *infrastructure.Hub,
	uc *usecase.DashboardUseCase,
	live *usecase.LiveRefresh,
	sendBuffer int,
) echo.HandlerFunc {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	return func(c echo.Context) error {
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()
		session := sessionOf(c)
		dash := dashboardOf(c)

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("dashboard", dash.Key), slog.Any("error", err))
			logger.Errorf("ws upgrade failed dashboard=%s ip=%s reqID=%s: %v", dash.Key, peerIP, requestID, err)
			return err
		}

		commands := infrastructure.NewCommandProcessor(hub, nil, dash.Entities()...)
		commands.Register("dismiss", func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
			var payload dismissPayload
			if err := json.Unmarshal(cmd.Payload, &payload); err != nil || strings.TrimSpace(payload.ID) == "" {
				commands.SendError(client, "dismiss requires a notice id")
				return
			}
			if !uc.DismissNotice(ctx, session, strings.TrimSpace(payload.ID)) {
				commands.SendError(client, "notice not found")
			}
		})

		userID := string(session.Profile.ID)
		client := infrastructure.NewClient(hub, conn, userID, session.ID, dash.Key, sendBuffer, commands)
		topics := domain.ClientTopics()
		hub.AttachClient(client, topics)

		release := live.Attach(session, dash.Key)
		client.AddCloseHook(func(*infrastructure.Client) { release() })

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				domain.MetaSessionID: session.ID,
				domain.MetaDashboard: dash.Key,
			},
			Data: map[string]any{
				"dashboard":     dash.Key,
				"role":          session.Role,
				"allowedTopics": topics,
				"notices":       uc.Notices(session),
			},
			Timestamp: time.Now().UTC(),
		})
		slog.Info("ws handler sent system.connected", slog.String("dashboard", dash.Key), slog.String("sessionId", session.ID))
		logger.Infof("ws connected dashboard=%s user=%s session=%s role=%s ip=%s reqID=%s",
			dash.Key, userID, session.ID, session.Role, peerIP, requestID)
		return nil
	}
}
