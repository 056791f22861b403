package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// client serializa escritas: gorilla/websocket não aceita writers concorrentes
type client struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

func (c *client) write(messageType int, b []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return c.conn.WriteMessage(messageType, b)
}

// Hub gerencia conexões WebSocket e assinaturas por canal
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// channel -> set of clients
	subs map[string]map[*client]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[string]map[*client]struct{}),
	}
}

// ServeHTTP gerencia o ciclo de vida de uma conexão WebSocket
// Permite subscribe/unsubscribe e responde a pings
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("ws upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn}
	defer conn.Close()

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			h.subscribe(msg.Channel, c)
		case "unsubscribe":
			h.unsubscribe(msg.Channel, c)
		case "ping":
			_ = c.write(websocket.TextMessage, []byte(`{"type":"pong"}`))
		}
	}

	// Remove a conexão de todas as assinaturas ao desconectar
	h.mu.Lock()
	for ch, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, ch)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) subscribe(channel string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[channel]; !ok {
		h.subs[channel] = make(map[*client]struct{})
	}
	h.subs[channel][c] = struct{}{}
}

func (h *Hub) unsubscribe(channel string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[channel]; ok {
		delete(m, c)
		if len(m) == 0 {
			delete(h.subs, channel)
		}
	}
}

// Subscribers conta os clientes inscritos no canal
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[channel])
}

// Broadcast envia a atualização para todos os clientes inscritos no canal
func (h *Hub) Broadcast(update Update) {
	h.mu.RLock()
	conns := make([]*client, 0, len(h.subs[update.Channel]))
	for c := range h.subs[update.Channel] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	b, err := json.Marshal(update)
	if err != nil {
		h.log.Warn("ws marshal failed", zap.Error(err))
		return
	}
	for _, c := range conns {
		if err := c.write(websocket.TextMessage, b); err != nil {
			h.log.Debug("ws write failed", zap.Error(err))
		}
	}
}
