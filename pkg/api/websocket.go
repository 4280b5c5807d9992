package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jaffarkeikei/InsightEd/pkg/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be less than pongWait
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Subscription channels.
const (
	ChannelReports  = "reports"
	ChannelFeedback = "feedback"
)

// Channels lists every channel; new clients start subscribed to all of them.
var Channels = []string{ChannelReports, ChannelFeedback}

// Message types.
const (
	EventTypeReportStarted    = "report.started"
	EventTypeReportCompleted  = "report.completed"
	EventTypeReportFailed     = "report.failed"
	EventTypeFeedbackFallback = "feedback.fallback"
	EventTypeProgress         = "report.progress"

	EventTypeSubscribe   = "subscribe"
	EventTypeUnsubscribe = "unsubscribe"
	EventTypePing        = "ping"
	EventTypePong        = "pong"
	EventTypeError       = "error"
)

// WSMessage is the envelope of every websocket frame.
type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Channels  []string    `json:"channels,omitempty"`
}

func newMessage(typ string, data interface{}) *WSMessage {
	return &WSMessage{Type: typ, Data: data, Timestamp: time.Now().UTC().Format(time.RFC3339)}
}

var wsLog = logging.New("ws")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SetUpgraderCheckOrigin replaces the websocket origin check.
func SetUpgraderCheckOrigin(fn func(*http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ---- Client ----

// Client is one websocket connection.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	subMu         sync.RWMutex
	subscriptions map[string]bool
}

// NewClient creates a client subscribed to every channel.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		ID:            uuid.NewString(),
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, sendBufferSize),
		subscriptions: make(map[string]bool),
	}
	c.Subscribe(Channels...)
	return c
}

// Subscribe adds channel subscriptions.
func (c *Client) Subscribe(channels ...string) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range channels {
		c.subscriptions[ch] = true
	}
}

// Unsubscribe removes channel subscriptions.
func (c *Client) Unsubscribe(channels ...string) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range channels {
		delete(c.subscriptions, ch)
	}
}

// IsSubscribed reports whether the client receives channel.
func (c *Client) IsSubscribed(channel string) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return c.subscriptions[channel]
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				wsLog.Warnf("read error from %s: %v", c.ID, err)
			}
			return
		}
		c.handleMessage(message)
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg WSMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.reply(newMessage(EventTypeError, map[string]string{"code": "INVALID_JSON", "message": "Failed to parse message"}))
		return
	}

	switch msg.Type {
	case EventTypeSubscribe, EventTypeUnsubscribe:
		valid := validChannels(msg.Channels)
		if len(valid) == 0 {
			c.reply(newMessage(EventTypeError, map[string]string{"code": "INVALID_CHANNELS", "message": "No known channels specified"}))
			return
		}
		if msg.Type == EventTypeSubscribe {
			c.Subscribe(valid...)
		} else {
			c.Unsubscribe(valid...)
		}
	case EventTypePing:
		c.reply(newMessage(EventTypePong, nil))
	default:
		wsLog.Debugf("unknown message type %q from %s", msg.Type, c.ID)
	}
}

func validChannels(channels []string) []string {
	var out []string
	for _, ch := range channels {
		switch ch {
		case ChannelReports, ChannelFeedback:
			out = append(out, ch)
		}
	}
	return out
}

// reply queues msg for this client only, dropping it when the buffer is full
// or the client has left the hub.
func (c *Client) reply(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if !c.hub.clients[c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
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

// ---- Hub ----

// Hub tracks connected clients and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a hub. Call Run before serving connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until Stop.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			wsLog.Debugf("client %s connected (total: %d)", client.ID, n)

		case client := <-h.unregister:
			h.mu.Lock()
			if h.clients[client] {
				delete(h.clients, client)
				close(client.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			wsLog.Debugf("client %s disconnected (total: %d)", client.ID, n)
		}
	}
}

// Stop ends Run and closes every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastToChannel sends msg to the clients subscribed to channel. Clients
// whose buffers are full are disconnected.
func (h *Hub) BroadcastToChannel(channel string, msg *WSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if !client.IsSubscribed(channel) {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	return nil
}

// ---- HTTP ----

// WebSocketHandler upgrades GET /ws requests.
type WebSocketHandler struct {
	hub *Hub
}

// NewWebSocketHandler creates a handler registering clients with hub.
func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		wsLog.Warnf("upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn)
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()
}

// RegisterRoutes mounts the handler at /ws.
func (h *WebSocketHandler) RegisterRoutes(router *Router) {
	router.GET("/ws", h.ServeHTTP)
}
