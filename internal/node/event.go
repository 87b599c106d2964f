package node

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of node event.
type EventType string

const (
	EventPacketSent      EventType = "packet_sent"
	EventMessageReceived EventType = "message_received"
	EventNodeDiscovered  EventType = "node_discovered"
	EventSweepStarted    EventType = "sweep_started"
)

// Event is a notification the worker emits to its event sink. Delivery is
// best effort; a slow or absent consumer never blocks the worker.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Type      EventType `json:"type"`
	Node      ID        `json:"node,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Detail    string    `json:"detail,omitempty"`
}

// NewEvent builds an event stamped with a fresh id and the current time.
func NewEvent(t EventType, subject ID, detail string) Event {
	return Event{
		ID:        uuid.New(),
		Type:      t,
		Node:      subject,
		Timestamp: time.Now(),
		Detail:    detail,
	}
}
