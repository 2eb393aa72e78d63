package domain

import "time"

// Message is what travels from Kafka and the use cases to websocket clients.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Target returns the session a message is addressed to, if any.
func (m *Message) Target() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return m.Metadata[MetaSessionID]
}
