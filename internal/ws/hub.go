package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

type Client struct {
	ID   string
	Send chan []byte
}

type registration struct {
	c    *Client
	done chan struct{}
}

type unicastMsg struct {
	id  string
	msg []byte
}

// Hub distribui os eventos de company para os clientes conectados.
// Só a goroutine de Run altera o mapa de clientes.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan registration
	unreg    chan *Client

	sendAll chan []byte     // envio para todos
	unicast chan unicastMsg // envio para 1 cliente

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan registration),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		unicast:  make(chan unicastMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	return fmt.Sprintf("c%d", h.nextID.Add(1))
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case reg := <-h.register:
			c := reg.c
			if c.ID == "" {
				c.ID = h.newID()
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			n := len(h.clients)
			h.mu.Unlock()
			close(reg.done)
			h.log.Info("client_registered", "id", c.ID, "total", n)

		case c := <-h.unreg:
			if c == nil || c.ID == "" {
				continue
			}
			if h.drop(c.ID) {
				h.log.Info("client_unregistered", "id", c.ID, "total", h.Count())
			}

		case msg := <-h.sendAll:
			var slow []string
			h.mu.RLock()
			for id, c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					slow = append(slow, id)
				}
			}
			h.mu.RUnlock()
			// cliente lento -> dropa para não travar o hub
			for _, id := range slow {
				h.drop(id)
				h.log.Warn("broadcast_drop_slow", "id", id)
			}

		case u := <-h.unicast:
			h.mu.RLock()
			c := h.clients[u.id]
			h.mu.RUnlock()
			if c == nil {
				h.log.Warn("send_one_miss", "id", u.id)
				continue
			}
			select {
			case c.Send <- u.msg:
			default:
				h.drop(u.id)
				h.log.Warn("send_one_drop_slow", "id", u.id)
			}

		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

// drop remove o cliente e fecha o Send; false se já tinha saído.
func (h *Hub) drop(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return false
	}
	delete(h.clients, id)
	close(c.Send)
	return true
}

// Count é o número de clientes conectados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Register retorna com o cliente já no hub (e com ID atribuído).
// Register/Unregister não bloqueiam depois que o hub parou.
func (h *Hub) Register(c *Client) {
	reg := registration{c: c, done: make(chan struct{})}
	select {
	case h.register <- reg:
		<-reg.done
	case <-h.stopped:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unreg <- c:
	case <-h.stopped:
	}
}

func (h *Hub) Broadcast(b []byte)               { h.sendAll <- b }
func (h *Hub) SendToClient(id string, b []byte) { h.unicast <- unicastMsg{id: id, msg: b} }
