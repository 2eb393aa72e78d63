package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

func TestNoticeBoardPushListsInOrder(t *testing.T) {
	t.Parallel()

	b := &fakeBroadcaster{}
	board, _ := newTestNoticeBoard(b)
	first := board.Push(context.Background(), "s1", domain.NoticeSuccess, "saved")
	second := board.Push(context.Background(), "s1", domain.NoticeDanger, "failed")

	notices := board.List("s1")
	require.Len(t, notices, 2)
	assert.Equal(t, first.ID, notices[0].ID)
	assert.Equal(t, second.ID, notices[1].ID)
	assert.Equal(t, first.CreatedAt.Add(board.ttl), first.ExpiresAt)
	assert.Empty(t, board.List("other"))
	assert.Equal(t, []string{"notices.pushed", "notices.pushed"}, b.topics())
}

func TestNoticeBoardExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	b := &fakeBroadcaster{}
	board, timers := newTestNoticeBoard(b)
	notice := board.Push(context.Background(), "s1", domain.NoticeInfo, "hello")
	require.Len(t, *timers, 1)

	(*timers)[0].fire()

	assert.Empty(t, board.List("s1"))
	assert.Equal(t, []string{"notices.pushed", "notices.expired"}, b.topics())
	assert.Equal(t, notice.ID, b.msgs[1].ResourceID)
	assert.Equal(t, "s1", b.msgs[1].Target())
}

func TestNoticeBoardDismissStopsTimer(t *testing.T) {
	t.Parallel()

	b := &fakeBroadcaster{}
	board, timers := newTestNoticeBoard(b)
	notice := board.Push(context.Background(), "s1", domain.NoticeWarning, "careful")

	assert.True(t, board.Dismiss(context.Background(), "s1", notice.ID))
	assert.True(t, (*timers)[0].stopped)
	assert.False(t, board.Dismiss(context.Background(), "s1", notice.ID), "second dismiss is a no-op")

	// A late expiry after dismissal publishes nothing.
	(*timers)[0].fire()
	assert.Equal(t, []string{"notices.pushed", "notices.dismissed"}, b.topics())
}
