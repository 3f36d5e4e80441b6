package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"assetwars/internal/service"
)

// Hub fans the notification log out to websocket subscribers. A poller tails
// game.notifications and broadcasts each new record; clients are read-only.
type Hub struct {
	log        *slog.Logger
	clients    map[*feedClient]bool
	broadcast  chan []byte
	register   chan *feedClient
	unregister chan *feedClient
}

type feedClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		log:        logger,
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

// Run owns the client registry. Blocks until ctx is done, so run it in its
// own goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop the connection rather than block.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Poll tails the notification log and broadcasts each record once. Blocks
// until ctx is done.
func (h *Hub) Poll(ctx context.Context, svc *service.Service, every time.Duration) {
	if every <= 0 {
		every = 2 * time.Second
	}
	cursor, err := svc.LatestNotificationID(ctx)
	if err != nil {
		h.log.Error("feed cursor init failed", "err", err)
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		batch, err := svc.NotificationsAfter(ctx, cursor, 100)
		if err != nil {
			h.log.Error("feed poll failed", "err", err)
			continue
		}
		for _, n := range batch {
			body, err := json.Marshal(n)
			if err != nil {
				continue
			}
			cursor = n.ID
			select {
			case h.broadcast <- body:
			case <-ctx.Done():
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (h *Hub) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "err", err)
		return
	}
	client := &feedClient{hub: h, conn: conn, send: make(chan []byte, 256)}
	h.register <- client
	go client.writePump()
	go client.readPump()
}

// readPump discards client messages; the feed is one-way. It exists to
// detect closes promptly.
func (c *feedClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *feedClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
