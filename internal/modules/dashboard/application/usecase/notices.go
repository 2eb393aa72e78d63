package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

const DefaultNoticeTTL = 5 * time.Second

type stopper interface {
	Stop() bool
}

type noticeEntry struct {
	notice domain.Notice
	timer  stopper
}

// NoticeBoard keeps each session's transient notices and expires them after a TTL.
type NoticeBoard struct {
	mu          sync.Mutex
	ttl         time.Duration
	sessions    map[string][]*noticeEntry
	broadcaster port.Broadcaster
	afterFunc   func(time.Duration, func()) stopper
	newID       func() string
	now         func() time.Time
}

func NewNoticeBoard(ttl time.Duration, broadcaster port.Broadcaster) *NoticeBoard {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeBoard{
		ttl:         ttl,
		sessions:    make(map[string][]*noticeEntry),
		broadcaster: broadcaster,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Push stacks a notice for the session and schedules its expiry.
func (b *NoticeBoard) Push(ctx context.Context, sessionID string, kind domain.NoticeKind, text string) domain.Notice {
	sessionID = strings.TrimSpace(sessionID)
	now := b.now().UTC()
	notice := domain.Notice{
		ID:        b.newID(),
		Kind:      kind,
		Text:      text,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	entry := &noticeEntry{notice: notice}

	b.mu.Lock()
	b.sessions[sessionID] = append(b.sessions[sessionID], entry)
	b.mu.Unlock()

	timer := b.afterFunc(b.ttl, func() { b.expire(sessionID, notice.ID) })
	b.mu.Lock()
	entry.timer = timer
	b.mu.Unlock()

	b.publish(ctx, sessionID, domain.ActionPushed, notice)
	return notice
}

// Dismiss removes a notice before it expires. It reports false when the notice is already gone.
func (b *NoticeBoard) Dismiss(ctx context.Context, sessionID, id string) bool {
	sessionID = strings.TrimSpace(sessionID)
	entry := b.remove(sessionID, strings.TrimSpace(id))
	if entry == nil {
		return false
	}
	b.mu.Lock()
	timer := entry.timer
	b.mu.Unlock()
	if timer != nil {
		timer.Stop()
	}
	b.publish(ctx, sessionID, domain.ActionDismissed, entry.notice)
	return true
}

// List returns the session's notices in insertion order.
func (b *NoticeBoard) List(sessionID string) []domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.sessions[strings.TrimSpace(sessionID)]
	notices := make([]domain.Notice, 0, len(entries))
	for _, entry := range entries {
		notices = append(notices, entry.notice)
	}
	return notices
}

func (b *NoticeBoard) expire(sessionID, id string) {
	entry := b.remove(sessionID, id)
	if entry == nil {
		return
	}
	b.publish(context.Background(), sessionID, domain.ActionExpired, entry.notice)
}

func (b *NoticeBoard) remove(sessionID, id string) *noticeEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.sessions[sessionID]
	for i, entry := range entries {
		if entry.notice.ID != id {
			continue
		}
		entries = append(entries[:i:i], entries[i+1:]...)
		if len(entries) == 0 {
			delete(b.sessions, sessionID)
		} else {
			b.sessions[sessionID] = entries
		}
		return entry
	}
	return nil
}

func (b *NoticeBoard) publish(ctx context.Context, sessionID, action string, notice domain.Notice) {
	if b.broadcaster == nil {
		return
	}
	b.broadcaster.Broadcast(ctx, &domain.Message{
		Topic:      domain.NoticeTopic(action),
		Entity:     domain.NoticesEntity,
		Action:     action,
		ResourceID: notice.ID,
		Metadata:   map[string]string{domain.MetaSessionID: sessionID},
		Data:       notice,
		Timestamp:  b.now().UTC(),
	})
}
