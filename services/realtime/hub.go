// Package realtime pushes schedule change events to dashboard clients so
// open timetable views converge without polling. Clients subscribe to one
// timetable scope and receive only that scope's events.
package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	fiberws "github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Event types pushed to subscribers.
const (
	EventScheduleCreated   = "schedule.created"
	EventScheduleUpdated   = "schedule.updated"
	EventScheduleDeleted   = "schedule.deleted"
	EventSchedulePublished = "schedule.published"
	EventTimeSlotsChanged  = "timeslots.changed"
)

// ScopeKey builds the subscription key for a timetable scope.
func ScopeKey(academicYear string, semester int, departmentID uint, classSection string) string {
	return fmt.Sprintf("%s:%d:%d:%s", academicYear, semester, departmentID, classSection)
}

// Event is one schedule change pushed over the socket.
type Event struct {
	Type  string      `json:"type"`
	Scope string      `json:"scope"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub maintains the set of active clients and routes events to the clients
// subscribed to the matching scope.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub    *Hub
	send   chan []byte
	userID uint
	scope  string
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			logrus.WithFields(logrus.Fields{
				"user_id": client.userID,
				"scope":   client.scope,
			}).Info("WebSocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			logrus.WithField("user_id", client.userID).Info("WebSocket client disconnected")
		}
	}
}

// BroadcastToScope sends an event to every client subscribed to the scope.
func (h *Hub) BroadcastToScope(scope string, event Event) {
	event.Scope = scope
	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Error marshaling WebSocket event")
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if client.scope != scope {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

// Broadcast sends an event to all connected clients regardless of scope.
// It fans out under the lock like BroadcastToScope, so delivery does not
// depend on the run loop being ready to receive.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("Error marshaling WebSocket event")
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// GetScopeCounts returns the number of subscribers per scope.
func (h *Hub) GetScopeCounts() map[string]int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	counts := make(map[string]int)
	for client := range h.clients {
		counts[client.scope]++
	}
	return counts
}

// ServeFiberWS handles a Fiber websocket connection subscribed to one scope.
func (h *Hub) ServeFiberWS(c *fiberws.Conn, userID uint, scope string) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "panic": r}).Error("ServeFiberWS panic")
		}
	}()

	client := &Client{
		hub:    h,
		send:   make(chan []byte, 256),
		userID: userID,
		scope:  scope,
	}

	h.register <- client

	// Write pump runs in its own goroutine; read pump stays on this one so
	// the Fiber connection is not shared across goroutines.
	go h.writePump(client, c)
	h.readPump(client, c)
}

func (h *Hub) writePump(client *Client, c *fiberws.Conn) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("writePump panic")
		}
		h.unregister <- client
		c.Close()
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			c.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.WriteMessage(fiberws.CloseMessage, []byte{})
				return
			}
			if err := c.WriteMessage(fiberws.TextMessage, message); err != nil {
				logrus.WithError(err).WithField("user_id", client.userID).Warn("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(fiberws.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readPump(client *Client, c *fiberws.Conn) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("readPump panic")
		}
		h.unregister <- client
		c.Close()
	}()

	c.SetReadLimit(maxMessageSize)
	c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		c.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.ReadMessage()
		if err != nil {
			if fiberws.IsUnexpectedCloseError(err, fiberws.CloseGoingAway, fiberws.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("user_id", client.userID).Warn("WebSocket unexpected close")
			}
			break
		}
		// Events only flow server to client; inbound frames are ignored.
	}
}
