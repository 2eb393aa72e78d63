package domain

import "time"

// NoticeKind matches the alert styles the page knows.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeDanger  NoticeKind = "danger"
)

// Notice is a transient, dismissible message.
type Notice struct {
	ID        string     `json:"id,omitempty"`
	Kind      NoticeKind `json:"kind"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

func NewNotice(kind NoticeKind, text string) *Notice {
	return &Notice{Kind: kind, Text: text}
}
