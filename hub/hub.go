package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lmmx/roundel/formatter"
	"github.com/lmmx/roundel/render"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second

type client struct {
	id   string
	conn *websocket.Conn
	// serializes writes; gorilla connections allow one concurrent writer
	mu sync.Mutex
}

func (c *client) write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub fans frames out to clients and feeds their intents to a Target.
type Hub struct {
	target   Target
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[string]*client
}

// New creates a hub dispatching intents to target.
func New(target Target) *Hub {
	return &Hub{
		target:  target,
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Publish implements render.Sink. Frames are encoded once and skipped
// entirely when nobody is listening.
func (h *Hub) Publish(f *render.Frame) {
	if h.Clients() == 0 {
		return
	}
	msg, err := formatter.BuildFrameJSON(f)
	if err != nil {
		logrus.Errorf("failed to encode frame: %v", err)
		return
	}
	h.Broadcast(msg)
}

// Broadcast sends msg to every client. Clients that fail to keep up are
// disconnected.
func (h *Hub) Broadcast(msg []byte) {
	h.clientsMu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range targets {
		if err := c.write(msg); err != nil {
			logrus.WithField("client", c.id).Debugf("dropping client: %v", err)
			h.remove(c)
		}
	}
}

func (h *Hub) remove(c *client) {
	h.clientsMu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.clientsMu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}

// ServeHTTP upgrades the connection and reads intents until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade error: %v", err)
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}
	h.clientsMu.Lock()
	h.clients[c.id] = c
	h.clientsMu.Unlock()
	log := logrus.WithField("client", c.id)
	log.Info("websocket client connected")
	defer func() {
		h.remove(c)
		log.Info("websocket client disconnected")
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		h.handle(c, data)
	}
}

func (h *Hub) handle(c *client, data []byte) {
	in, err := DecodeIntent(data)
	var reply *Reply
	if err == nil {
		reply, err = Dispatch(h.target, in)
	}
	if err != nil {
		reply = &Reply{Error: err.Error()}
	}
	if reply == nil {
		return
	}
	reply.Type, reply.Intent = "reply", in.Type
	msg, _ := json.Marshal(reply)
	if err := c.write(msg); err != nil {
		logrus.WithField("client", c.id).Debugf("failed to reply: %v", err)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.clientsMu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.clientsMu.Unlock()
	for _, c := range clients {
		_ = c.conn.Close()
	}
}
