package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCheckedOut EventType = "order_checked_out"
	EventSessionOpened   EventType = "session_opened"
	EventSessionClosed   EventType = "session_closed"
)

// Event represents a terminal event emitted by handlers.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	StaffID   string      `json:"staff_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderCheckedOutPayload payload.
type OrderCheckedOutPayload struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	Table        string `json:"table"`
	LineCount    int    `json:"line_count"`
	Total        string `json:"total"`
}

// SessionOpenedPayload payload.
type SessionOpenedPayload struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
