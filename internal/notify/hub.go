package notify

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

type Hub struct {
	clients    map[*Client]bool
	byUser     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Message struct {
	Type      string                 `json:"type"`
	UserID    string                 `json:"user_id"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true
	if h.byUser[client.UserID] == nil {
		h.byUser[client.UserID] = make(map[*Client]bool)
	}
	h.byUser[client.UserID][client] = true
	log.Printf("Toast client registered: %s", client.UserID)

	welcome := Message{
		Type:      "welcome",
		UserID:    client.UserID,
		Timestamp: time.Now().Unix(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	}
	if data, err := json.Marshal(welcome); err == nil {
		select {
		case client.send <- data:
		default:
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if peers, exists := h.byUser[client.UserID]; exists {
			delete(peers, client)
			if len(peers) == 0 {
				delete(h.byUser, client.UserID)
			}
		}

		log.Printf("Toast client unregistered: %s", client.UserID)
	}
}

// SendToUser delivers a message to every connection the user has open.
// Users with no open connections are silently skipped.
func (h *Hub) SendToUser(userID string, message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.RLock()
	clients := make([]*Client, 0, len(h.byUser[userID]))
	for client := range h.byUser[userID] {
		clients = append(clients, client)
	}
	h.mutex.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop the connection rather than block the hub.
			h.dropClient(client)
		}
	}
}

// dropClient removes a client from both indexes and closes its send
// channel. Safe to call for an already-removed client.
func (h *Hub) dropClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if peers, exists := h.byUser[client.UserID]; exists {
		delete(peers, client)
		if len(peers) == 0 {
			delete(h.byUser, client.UserID)
		}
	}
	log.Printf("Toast client dropped (slow consumer): %s", client.UserID)
}

func (h *Hub) ConnectedUsers() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.byUser)
}
