package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// a página de lista roda em outra origem (cmd/web)
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hello é a primeira mensagem que cada cliente recebe.
type Hello struct {
	Action  string `json:"action"` // "hello"
	ID      string `json:"id"`
	Clients int    `json:"clients"`
}

// Handler faz o upgrade e liga o cliente ao hub.
func Handler(hub *Hub, buffer int, log *slog.Logger) http.HandlerFunc {
	if buffer <= 0 {
		buffer = 256
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("ws_upgrade_error", "err", err)
			return
		}

		client := &Client{Send: make(chan []byte, buffer)}
		hub.Register(client)
		log.Info("ws_client_connected", "id", client.ID, "remote", r.RemoteAddr)

		hello, _ := json.Marshal(Hello{Action: "hello", ID: client.ID, Clients: hub.Count()})
		hub.SendToClient(client.ID, hello)

		go writePump(conn, client)
		go readPump(hub, conn, client)
	}
}

// writePump envia as mensagens do hub e pings periódicos.
func writePump(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump só detecta o fechamento; clientes não mandam dados.
func readPump(hub *Hub, conn *websocket.Conn, c *Client) {
	defer func() {
		hub.Unregister(c)
		_ = conn.Close()
	}()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Relay repassa ao hub os eventos válidos até bodies fechar ou ctx acabar.
func Relay(ctx context.Context, hub *Hub, bodies <-chan []byte, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-bodies:
			if !ok {
				log.Warn("deliveries_channel_closed")
				return
			}
			var ev models.CompanyEvent
			if err := json.Unmarshal(b, &ev); err != nil || ev.Action == "" {
				log.Warn("event_discarded", "err", err, "body", string(b))
				continue
			}
			log.Debug("event_relayed", "action", ev.Action, "id", ev.ID)
			hub.Broadcast(b)
		}
	}
}
