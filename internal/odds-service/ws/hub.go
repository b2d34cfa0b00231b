package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 2 * time.Second

// conn serializa as escritas: gorilla/websocket não aceita writers concorrentes
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) writeRaw(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

// Hub gerencia conexões WebSocket e assinaturas de Shark Picks por sport
// subs: mapeia sport para o conjunto de conexões inscritas
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	mu       sync.RWMutex
	subs     map[string]map[*conn]struct{}

	OnBroadcast func(sport string, delivered int) // métricas
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(log *zap.Logger, allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		subs:     make(map[string]map[*conn]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
// Permite subscribe/unsubscribe por sport e responde a pings
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("ws upgrade failed", zap.Error(err))
		return
	}
	c := &conn{ws: ws}
	defer ws.Close()

	for {
		var msg ClientMsg
		if err := ws.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			if msg.Sport == "" {
				_ = c.writeJSON(map[string]string{"type": "error", "error": "sport required"})
				continue
			}
			h.subscribe(msg.Sport, c)
		case "unsubscribe":
			h.unsubscribe(msg.Sport, c)
		case "ping":
			_ = c.writeJSON(map[string]string{"type": "pong"})
		}
	}
	// Remove a conexão de todas as assinaturas ao desconectar
	h.mu.Lock()
	for sport, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, sport)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) subscribe(sport string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sport]; !ok {
		h.subs[sport] = make(map[*conn]struct{})
	}
	h.subs[sport][c] = struct{}{}
}

func (h *Hub) unsubscribe(sport string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[sport]; ok {
		delete(m, c)
		if len(m) == 0 {
			delete(h.subs, sport)
		}
	}
}

// Subscribers retorna quantas conexões estão inscritas no sport
func (h *Hub) Subscribers(sport string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sport])
}

// Broadcast envia os picks para todos os clientes inscritos no sport correspondente
func (h *Hub) Broadcast(update PicksUpdate) {
	h.mu.RLock()
	targets := make([]*conn, 0, len(h.subs[update.Sport]))
	for c := range h.subs[update.Sport] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	b, err := json.Marshal(update)
	if err != nil {
		h.log.Warn("ws marshal failed", zap.Error(err))
		return
	}
	delivered := 0
	for _, c := range targets {
		if err := c.writeRaw(b); err != nil {
			h.log.Debug("ws write failed", zap.Error(err))
			continue
		}
		delivered++
	}
	if h.OnBroadcast != nil {
		h.OnBroadcast(update.Sport, delivered)
	}
}
