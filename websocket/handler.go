package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/itam_backend/models"
)

// EventConnected is the first message sent on a new feed connection
const EventConnected = "connected"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS already restricts browser origins for the authenticated upgrade request
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleFeed upgrades the request and streams the events of company until
// the client disconnects
func HandleFeed(c echo.Context, hub *Hub, company, email string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		Company: company,
		Email:   email,
		Conn:    conn,
		send:    make(chan models.Event, sendBufferSize),
	}
	client.send <- models.Event{
		Type:    EventConnected,
		Company: company,
		Message: "Feed connection established",
	}

	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump(hub)
	return nil
}

// readPump only watches for disconnects and pongs; clients send nothing
func (c *Client) readPump(hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
	}()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
