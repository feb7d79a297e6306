package models

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Events pushed to connected dashboards.
const (
	EventStatusChanged    = "status_changed"
	EventTeamsReady       = "teams_ready"
	EventTeamLocked       = "team_locked"
	EventTeamReleased     = "team_released"
	EventScoreSubmitted   = "score_submitted"
	EventWinnersAnnounced = "winners_announced"
	EventLocksReclaimed   = "locks_reclaimed"
)

type WSMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Client struct {
	Conn *websocket.Conn
	Send chan WSMessage
}

type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan WSMessage
	Register   chan *Client
	Unregister chan *Client
	Mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan WSMessage, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Mutex.Lock()
			h.Clients[client] = true
			h.Mutex.Unlock()
		case client := <-h.Unregister:
			h.Mutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.Mutex.Unlock()
		case message := <-h.Broadcast:
			h.Mutex.Lock()
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
			h.Mutex.Unlock()
		}
	}
}

// Notify broadcasts without blocking the caller when the hub is saturated.
func (h *Hub) Notify(event string, data interface{}) {
	select {
	case h.Broadcast <- WSMessage{Event: event, Data: data}:
	default:
		log.Printf("hub: dropped %s event, broadcast buffer full", event)
	}
}

// ReadPump drains client messages until the connection dies.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			break
		}
	}
}

// WritePump sends messages from the Send channel to the connection.
func (c *Client) WritePump() {
	defer func() {
		c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteJSON(message); err != nil {
			log.Println("ws write error:", err)
			break
		}
	}
}
