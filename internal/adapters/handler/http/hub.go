package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
)

const MessageBatchProgress = "batch_progress"

var errHubBusy = errors.New("progress hub is busy")

// Message represents a message to be sent to connected clients
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type envelope struct {
	batchID string
	msg     Message
}

// Hub fans progress messages out to websocket clients. Clients may follow a
// single batch by connecting with ?batch=<id>.
type Hub struct {
	clients map[*Client]bool

	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is done. It must only be
// called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			setWebsocketClients(0)
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			setWebsocketClients(len(h.clients))
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			setWebsocketClients(len(h.clients))
			h.mu.Unlock()
		case env := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client.batchID != "" && env.batchID != "" && client.batchID != env.batchID {
					continue
				}
				select {
				case client.send <- env.msg:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			setWebsocketClients(len(h.clients))
			h.mu.Unlock()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishProgress queues a progress event for broadcast. It never blocks the
// batch loop: when the queue is full the event is dropped.
func (h *Hub) PublishProgress(ctx context.Context, event domain.ProgressEvent) error {
	env := envelope{batchID: event.BatchID, msg: Message{Type: MessageBatchProgress, Payload: event}}
	select {
	case h.broadcast <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errHubBusy
	}
}

// Consume broadcasts events from an external source, such as the redis
// progress relay, until ctx is done or the channel closes.
func (h *Hub) Consume(ctx context.Context, events <-chan domain.ProgressEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				logger.Warn("Progress channel closed, hub consumer exiting")
				return
			}
			if err := h.PublishProgress(ctx, event); err != nil {
				logger.Debug("Dropped progress event", "batch_id", event.BatchID, "error", err)
			}
		}
	}
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	batchID string
}

// readPump discards inbound frames and unregisters the client once the
// connection drops.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if err := json.NewEncoder(w).Encode(message); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests from the peer.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	client := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, 64),
		batchID: r.URL.Query().Get("batch"),
	}
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
