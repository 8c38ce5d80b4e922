package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Client is one feed subscriber of a company
type Client struct {
	Company string
	Email   string
	Conn    *websocket.Conn
	send    chan models.Event
}

type broadcast struct {
	company string
	event   models.Event
}

// Hub maintains the subscribers of every company feed and fans events out to them
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcast
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcast, 64),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop; it returns after Stop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Company] == nil {
				h.clients[client.Company] = make(map[*Client]bool)
			}
			h.clients[client.Company][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.remove(client)
		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for client := range h.clients[msg.company] {
				select {
				case client.send <- msg.event:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				zap.S().Warnw("dropping slow feed client", "company", client.Company, "email", client.Email)
				h.remove(client)
			}
		case <-h.done:
			h.mu.Lock()
			for company, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, company)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.Company]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.Company)
	}
}

// Stop ends Run and closes every subscriber
func (h *Hub) Stop() {
	close(h.done)
}

// Publish queues an event for the subscribers of company. It never blocks
// the caller; events are dropped when the hub is saturated.
func (h *Hub) Publish(company string, event models.Event) {
	select {
	case h.broadcast <- broadcast{company: company, event: event}:
	default:
		zap.S().Warnw("feed saturated, event dropped", "company", company, "type", event.Type)
	}
}

// Subscribers returns the number of clients connected to a company feed
func (h *Hub) Subscribers(company string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[company])
}
