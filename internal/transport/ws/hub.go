package ws

import (
	"encoding/json"
	"log"
)

// Hub owns the set of live connections and the room subscription registry.
// All mutation happens on the Run goroutine, so joins, disconnects and
// broadcasts never race.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg
}

type broadcastMsg struct {
	room   string // empty for global broadcasts
	global bool
	data   []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			log.Printf("ws hub: client connected (%d total)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				// Dropping the client drops every room it had joined.
				h.drop(client)
				log.Printf("ws hub: client disconnected (%d total)", len(h.clients))
			}

		case msg := <-h.broadcast:
			for client := range h.clients {
				if !msg.global && !client.InRoom(msg.room) {
					continue
				}
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect
					h.drop(client)
				}
			}
		}
	}
}

// drop removes a client and signals its pumps to shut down. The send
// channel is never closed: the client's read goroutine may still be live
// and queueing replies, and a send on a closed channel would panic it.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.done)
}

// BroadcastToRoom sends an event to every connection joined to the room.
// A room with no subscribers drops the event silently.
func (h *Hub) BroadcastToRoom(room string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.broadcast <- &broadcastMsg{room: room, data: data}
}

// BroadcastGlobal sends an event to every connected client.
func (h *Hub) BroadcastGlobal(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.broadcast <- &broadcastMsg{global: true, data: data}
}
