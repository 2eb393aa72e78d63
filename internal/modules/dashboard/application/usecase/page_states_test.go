package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

func TestPageStatesReleaseUnwatchedPages(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	dash := rig.dashboard("admin")
	users := make([]any, 0, 200)
	for i := 0; i < 200; i++ {
		users = append(users, map[string]any{"id": i, "username": fmt.Sprintf("user%d", i), "role": "GUEST"})
	}
	rig.backend.payloads["/api/admin/users"] = users

	for i := 0; i < 50; i++ {
		session := testSession(domain.RoleAdmin)
		session.ID = fmt.Sprintf("sess-%d", i)
		rig.dashboards.Load(context.Background(), dash, session)
	}
	if got := rig.pages.Live(); got != 0 {
		t.Fatalf("expected no live pages after HTTP-only loads, got %d", got)
	}
}

func TestPageStatesKeepWatchedPages(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	live := NewLiveRefresh(rig.catalog, rig.backend, rig.pages, NewBroadcastUseCase(rig.broadcast))
	dash := rig.dashboard("admin")
	admin := testSession(domain.RoleAdmin)

	release := live.Attach(admin, dash.Key)
	second := live.Attach(admin, dash.Key)
	rig.dashboards.Load(context.Background(), dash, admin)
	require.Equal(t, 1, rig.pages.Live())

	release()
	assert.Equal(t, 1, rig.pages.Live(), "second socket still open")
	second()
	assert.Equal(t, 0, rig.pages.Live())
}

func TestPageStatesSelectionSurvivesRelease(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	dash := rig.dashboard("manager")
	session := testSession(domain.RoleManager)

	rig.dashboards.UpdateState(dash, session, domain.UIState{
		ActiveTab: "bookings",
		Selection: map[string]string{"approve-booking": "4"},
	})
	require.Equal(t, 0, rig.pages.Live())

	state := rig.pages.Get(session, dash.Key)
	assert.Equal(t, "bookings", state.UI().ActiveTab)
	assert.Equal(t, "4", state.Selected("approve-booking"))
}
