package models

// Notification severities rendered by the dashboard UI.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Notification is the short, categorized message attached to every operation
// response. The UI auto-dismisses them after a fixed interval.
type Notification struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// BroadcastEvent is published to the realtime channel. The channel is
// unreliable by contract; nothing in the core waits on delivery.
type BroadcastEvent struct {
	Channel string      `json:"channel"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
