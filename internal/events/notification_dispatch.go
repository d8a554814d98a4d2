package events

import "time"

// NotificationDispatchTopic carries persisted notifications to the
// socket gateway, which fans them out to connected clients.
const NotificationDispatchTopic = "hr.notification.dispatch.v1"

const (
	EventLeaveCreated        = "leave.created"
	EventLeaveDecided        = "leave.decided"
	EventCorrectionRequested = "attendance_correction.requested"
	EventCorrectionDecided   = "attendance_correction.decided"
	EventCompOffGranted      = "comp_off.granted"
)

type NotificationDispatchEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id,omitempty"`
	Role       string    `json:"role,omitempty"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
