package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/tableside/api/internal/database"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// TableLookup checks that a table exists before a client may join its room.
// Satisfied by *database.Queries.
type TableLookup interface {
	GetTable(ctx context.Context, id uuid.UUID) (database.Table, error)
}

// Client is a single customer WebSocket connection bound to one table.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	tableID uuid.UUID
	send    chan []byte
}

// ReadPump only detects disconnects; table clients never send messages.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read", zap.String("table_id", c.tableID.String()), zap.Error(err))
			}
			break
		}
	}
}

// WritePump pumps messages from the hub to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One event per frame so browsers can JSON.parse each message.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Handler serves WS /ws/tables/{tableId}.
type Handler struct {
	hub      *Hub
	tables   TableLookup
	upgrader websocket.Upgrader
}

// NewHandler builds the upgrade handler. An empty allowedOrigins accepts any origin.
func NewHandler(hub *Hub, tables TableLookup, allowedOrigins []string) *Handler {
	return &Handler{
		hub:    hub,
		tables: tables,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "tableId"))
	if err != nil {
		http.Error(w, "invalid table id", http.StatusBadRequest)
		return
	}

	if _, err := h.tables.GetTable(r.Context(), tableID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		h.hub.logger.Error("websocket table lookup", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.hub.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		tableID: tableID,
		send:    make(chan []byte, 256),
	}
	if !h.hub.join(client) {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
