package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/tableside/api/internal/events"
	"go.uber.org/zap"
)

var ErrHubBusy = errors.New("websocket hub broadcast queue full")

// tableEvent routes an encoded event to one table's room.
type tableEvent struct {
	TableID uuid.UUID
	Message []byte
}

// Hub maintains the set of connected table clients and broadcasts order
// events to them. Rooms are keyed by table ID.
type Hub struct {
	rooms map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *tableEvent
	done       chan struct{}

	// guards rooms for readers outside the Run goroutine
	mu sync.RWMutex

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *tableEvent, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the room map until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return nil

		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.tableID] == nil {
				h.rooms[client.tableID] = make(map[*Client]bool)
			}
			h.rooms[client.tableID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[ev.TableID] {
				select {
				case client.send <- ev.Message:
				default:
					// slow consumer
					h.logger.Warn("dropping slow websocket client", zap.String("table_id", ev.TableID.String()))
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.rooms[client.tableID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.rooms, client.tableID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for tableID, clients := range h.rooms {
		for client := range clients {
			close(client.send)
		}
		delete(h.rooms, tableID)
	}
}

// Publish queues ev for the room of ev.TableID. It never blocks: when the
// queue is full the event is dropped and ErrHubBusy returned.
func (h *Hub) Publish(_ context.Context, ev events.Event) error {
	message, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- &tableEvent{TableID: ev.TableID, Message: message}:
		return nil
	default:
		return ErrHubBusy
	}
}

// join registers client unless the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Clients reports how many clients are connected for a table.
func (h *Hub) Clients(tableID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tableID])
}
