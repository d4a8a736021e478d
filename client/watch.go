package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/LovationAdmin/finanzas/events"

	"github.com/gorilla/websocket"
)

// FeedURL is the WebSocket address of the change feed.
func (c *Client) FeedURL() (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = u.Path + "/api/ws"
	return u.String(), nil
}

// Watch subscribes to the change feed and calls fn for every event,
// including the initial ready event, until ctx is done or the connection
// drops.
func (c *Client) Watch(ctx context.Context, fn func(events.MovementEvent)) error {
	feed, err := c.FeedURL()
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, feed, nil)
	if err != nil {
		return fmt.Errorf("dial change feed: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read change feed: %w", err)
		}
		e, err := events.MovementEventFromJSON(data)
		if err != nil {
			continue
		}
		fn(e)
	}
}
