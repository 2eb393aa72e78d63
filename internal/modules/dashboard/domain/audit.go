package domain

import "time"

// ActionAuditEvent records one dispatched mutation, successful or not.
type ActionAuditEvent struct {
	Dashboard string    `json:"dashboard"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Role      string    `json:"role,omitempty"`
	Succeeded bool      `json:"succeeded"`
	Status    int       `json:"status,omitempty"`
	At        time.Time `json:"at"`
}
