package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"tucing-suites-calendar/internal/middleware"
	"tucing-suites-calendar/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func RegisterRoutes(r chi.Router, deps Deps) {
	r.Get("/ws/dashboard", wsHandler(deps))
}

// wsHandler godoc
// @Summary WebSocket del tablero
// @Description Canal de gestos del calendario. El cliente manda comandos (`click`, `hover`, `leave`, `navigate`, `add`, `edit`, `cancel`, `submit`, `delete`, `refresh`) y recibe `state`, `draft`, `saved`, `deleted`, `month`, `warning` y `error`. El token va en `?token=` porque el navegador no manda headers en el upgrade.
// @Tags dashboard
// @Param token query string false "Token de sesión"
// @Success 101 {string} string "switching protocols"
// @Failure 401 {string} string "unauthorized"
// @Router /ws/dashboard [get]
func wsHandler(deps Deps) http.HandlerFunc {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Empty() {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", map[string]any{"error": err.Error()})
			return
		}

		c := &client{
			conn: conn,
			send: make(chan Message, sendBuffer),
			done: make(chan struct{}),
			log:  log,
		}

		board, err := NewBoard(claims, deps, c.enqueue)
		if err != nil {
			_ = conn.Close()
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.DashboardConnected()
			defer deps.Metrics.DashboardDisconnected()
		}
		log.Info("dashboard connected", map[string]any{"user_id": claims.UserID})

		// ctx vive lo que dure la conexión.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go c.writePump()
		if err := board.Start(ctx); err != nil {
			c.enqueue(ErrorMessage(err))
		}

		c.readPump(ctx, board)

		board.Close()
		c.shutdown()
		log.Info("dashboard disconnected", map[string]any{"user_id": claims.UserID})
	}
}

// client es una conexión: readPump en la goroutine del handler, writePump aparte.
type client struct {
	conn *websocket.Conn
	send chan Message
	done chan struct{}
	once sync.Once
	log  logger.Logger
}

// enqueue nunca bloquea: con el buffer lleno el mensaje se descarta.
func (c *client) enqueue(m Message) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- m:
	case <-c.done:
	default:
		c.log.Warn("dashboard send buffer full, dropping message", map[string]any{"type": string(m.Type)})
	}
}

func (c *client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *client) readPump(ctx context.Context, board *Board) {
	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("dashboard read failed", map[string]any{"error": err.Error()})
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.enqueue(Message{Type: MsgError, Error: "invalid json"})
			continue
		}
		if err := board.Handle(ctx, cmd); err != nil {
			c.enqueue(ErrorMessage(err))
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case <-c.done:
			return

		case m := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(m); err != nil {
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
