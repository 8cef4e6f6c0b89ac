package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeSlotBooked   MessageType = "slot_booked"
	MessageTypeSlotReleased MessageType = "slot_released"
	MessageTypeFieldStatus  MessageType = "field_status"
)

// SlotUpdate represents an availability change on one slot
type SlotUpdate struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	FieldID   string      `json:"fieldId"`
	BookingID string      `json:"bookingId,omitempty"`
	Slot      *SlotUpdate `json:"slot,omitempty"`
	Status    string      `json:"status,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// Hub manages WebSocket connections per field
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	logger     *logrus.Logger
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.fieldID] == nil {
				h.clients[client.fieldID] = make(map[*Client]bool)
			}
			h.clients[client.fieldID][client] = true
			h.logger.WithFields(logrus.Fields{
				"fieldId": client.fieldID,
				"total":   len(h.clients[client.fieldID]),
			}).Debug("websocket client registered")
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.fieldID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.fieldID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			fieldID, err := uuid.Parse(message.FieldID)
			if err != nil {
				h.logger.WithField("fieldId", message.FieldID).Warn("invalid field ID in broadcast")
				continue
			}

			data, err := json.Marshal(message)
			if err != nil {
				h.logger.WithError(err).Error("failed to marshal websocket message")
				continue
			}

			h.mu.RLock()
			clients := h.clients[fieldID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[fieldID], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastSlotBooked notifies clients watching a field that a slot
// was taken.
func (h *Hub) BroadcastSlotBooked(fieldID, bookingID, date, startTime, endTime string) {
	h.broadcast <- &Message{
		Type:      MessageTypeSlotBooked,
		FieldID:   fieldID,
		BookingID: bookingID,
		Slot:      &SlotUpdate{Date: date, StartTime: startTime, EndTime: endTime},
		Timestamp: time.Now().UnixMilli(),
	}
}

// BroadcastSlotReleased notifies clients watching a field that a slot
// became free again.
func (h *Hub) BroadcastSlotReleased(fieldID, bookingID, date, startTime, endTime string) {
	h.broadcast <- &Message{
		Type:      MessageTypeSlotReleased,
		FieldID:   fieldID,
		BookingID: bookingID,
		Slot:      &SlotUpdate{Date: date, StartTime: startTime, EndTime: endTime},
		Timestamp: time.Now().UnixMilli(),
	}
}

// BroadcastFieldStatus notifies clients of an operational status change.
func (h *Hub) BroadcastFieldStatus(fieldID, status string) {
	h.broadcast <- &Message{
		Type:      MessageTypeFieldStatus,
		FieldID:   fieldID,
		Status:    status,
		Timestamp: time.Now().UnixMilli(),
	}
}
