package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/LovationAdmin/finanzas/events"
	"github.com/LovationAdmin/finanzas/utils"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler pushes movement change signals to every connected client. It is
// an events.Publisher.
type WSHandler struct {
	M *melody.Melody
}

var _ events.Publisher = (*WSHandler)(nil)

func NewWSHandler() *WSHandler {
	m := melody.New()

	// Clients only ever send pongs.
	m.Config.MaxMessageSize = 1024

	// Keep-alive for hosts that drop idle connections
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		utils.LogWebSocket("connect", s.Request.RemoteAddr)
		ready, _ := events.MovementEvent{Type: events.TypeReady, At: time.Now().UTC()}.ToJSON()
		if err := s.Write(ready); err != nil {
			utils.LogWebSocket("error", err.Error())
		}
	})

	m.HandleDisconnect(func(s *melody.Session) {
		utils.LogWebSocket("disconnect", s.Request.RemoteAddr)
	})

	m.HandleError(func(s *melody.Session, err error) {
		utils.LogWebSocket("error", err.Error())
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request to a WebSocket subscribed to the change feed
func (h *WSHandler) HandleWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		utils.LogWebSocket("error", fmt.Sprintf("failed to upgrade websocket: %v", err))
	}
}

// Publish broadcasts the event to all sessions.
func (h *WSHandler) Publish(_ context.Context, e events.MovementEvent) error {
	msg, err := e.ToJSON()
	if err != nil {
		return err
	}
	if err := h.M.Broadcast(msg); err != nil {
		return fmt.Errorf("broadcast %s event: %w", e.Type, err)
	}
	return nil
}

func (h *WSHandler) Close() error {
	return h.M.Close()
}
