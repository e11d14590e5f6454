package stream

import (
	"time"
)

// EventType tags one progress protocol event
type EventType string

const (
	EventStart     EventType = "start"
	EventProgress  EventType = "progress"
	EventPhase1    EventType = "phase1"
	EventPhase2    EventType = "phase2"
	EventComplete  EventType = "complete"
	EventError     EventType = "error"
	EventHeartbeat EventType = "heartbeat"
)

// Event is one message in the progress protocol. Within a stream, events
// are strictly ordered: start is always first and exactly one terminal
// event (complete or error) is always last.
type Event struct {
	Type      EventType `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorPayload is the payload of an error event
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Usage   any    `json:"usage,omitempty"`
}

// ProgressPayload is the payload of progress/phase events
type ProgressPayload struct {
	Status string `json:"status"`
}

func newEvent(eventType EventType, payload any) Event {
	return Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}
