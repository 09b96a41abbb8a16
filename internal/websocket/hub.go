// Package websocket broadcasts stock and workflow events to connected
// clients of a company. Delivery is best effort; a client whose send
// buffer is full is dropped.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is a broadcast message for one company's clients
type Event struct {
	Type      string      `json:"type"` // stock_movement | step_completed | invoice_created
	CompanyID uint        `json:"company_id"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Hub maintains the set of active clients grouped by company
type Hub struct {
	// CompanyID -> set of clients
	clients map[uint]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	events     chan Event

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.CompanyID] == nil {
				h.clients[client.CompanyID] = make(map[*Client]struct{})
			}
			h.clients[client.CompanyID][client] = struct{}{}
			h.mu.Unlock()
			log.Printf("WS client connected (company %d)", client.CompanyID)

		case client := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.clients[client.CompanyID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.send)
					if len(set) == 0 {
						delete(h.clients, client.CompanyID)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("WS client disconnected (company %d)", client.CompanyID)

		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// Broadcast queues an event for the company's clients. It never blocks the
// caller; if the hub's queue is full the event is dropped.
func (h *Hub) Broadcast(event Event) {
	select {
	case h.events <- event:
	default:
		log.Printf("WS event queue full, dropping %s for company %d", event.Type, event.CompanyID)
	}
}

func (h *Hub) deliver(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("WS marshal error: %v", err)
		return
	}

	h.mu.Lock()
	set := h.clients[event.CompanyID]
	for client := range set {
		select {
		case client.send <- msg:
		default:
			// Drop clients that cannot keep up
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, event.CompanyID)
	}
	h.mu.Unlock()
}
