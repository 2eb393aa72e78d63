package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

func TestDispatchUnknownAction(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	_, err := rig.dispatcher.Dispatch(context.Background(), rig.dashboard("manager"), testSession(domain.RoleManager), ActionRequest{Action: "launch-rocket"})
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.Empty(t, rig.backend.sentRequests())
}

func TestDispatchRequiresTargetBeforeAnything(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	outcome, err := rig.dispatcher.Dispatch(context.Background(), rig.dashboard("manager"), testSession(domain.RoleManager), ActionRequest{Action: "approve-booking", Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, outcome.Kind)
	assert.Equal(t, selectTargetText, outcome.Errors["target"])
	assert.Empty(t, rig.backend.sentRequests())
}

func TestDispatchValidationBlocksSend(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	outcome, err := rig.dispatcher.Dispatch(context.Background(), rig.dashboard("manager"), testSession(domain.RoleManager), ActionRequest{
		Action:    "cancel-booking",
		Target:    "17",
		Confirmed: true,
		Body:      map[string]any{"reason": "   "},
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, outcome.Kind)
	assert.Contains(t, outcome.Errors, "reason")
	assert.Empty(t, rig.backend.sentRequests())
	assert.Empty(t, rig.audit.events)
}

func TestDispatchAsksForConfirmationThenSendsOnce(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	dash := rig.dashboard("manager")
	session := testSession(domain.RoleManager)
	rig.backend.payloads["/api/manager/bookings"] = []any{
		map[string]any{"id": 17, "bookingReference": "BK-17", "status": "CONFIRMED"},
	}
	rig.backend.payloads["/api/manager/dashboard"] = map[string]any{"pendingBookings": 0}

	outcome, err := rig.dispatcher.Dispatch(context.Background(), dash, session, ActionRequest{Action: "approve-booking", Target: "17"})
	require.NoError(t, err)
	require.Equal(t, OutcomeNeedsConfirmation, outcome.Kind)
	assert.Equal(t, "Are you sure you want to approve this booking?", outcome.Prompt)
	assert.Empty(t, rig.backend.sentRequests())

	// The pending selection lets the confirmation omit the target.
	outcome, err = rig.dispatcher.Dispatch(context.Background(), dash, session, ActionRequest{Action: "approve-booking", Confirmed: true})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, outcome.Kind)

	sent := rig.backend.sentRequests()
	require.Len(t, sent, 1)
	assert.Equal(t, http.MethodPut, sent[0].Method)
	assert.Equal(t, "/api/manager/bookings/17/approve", sent[0].Path)
	assert.Nil(t, sent[0].Body)

	require.NotNil(t, outcome.Notice)
	assert.Equal(t, "Booking approved successfully", outcome.Notice.Text)
	require.Len(t, outcome.Tables, 2)
	assert.Equal(t, "bookings", outcome.Tables[0].Panel)
	assert.Equal(t, "BK-17", outcome.Tables[0].Rows[0].Cells[0].Text)
	require.NotNil(t, outcome.Stats)

	require.Len(t, rig.audit.events, 1)
	assert.True(t, rig.audit.events[0].Succeeded)
	assert.Equal(t, "17", rig.audit.events[0].Target)
	assert.Equal(t, "", rig.pages.Get(session, dash.Key).Selected("approve-booking"))
}

func TestDispatchPrefersBackendSuccessMessage(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	rig.backend.result = port.MutationResult{Status: http.StatusCreated, Payload: map[string]any{"message": "Staff created"}}
	outcome, err := rig.dispatcher.Dispatch(context.Background(), rig.dashboard("manager"), testSession(domain.RoleManager), ActionRequest{
		Action: "add-staff",
		Body: map[string]any{
			"firstName": "Nimal",
			"lastName":  "Silva",
			"username":  "nimal_s",
			"email":     "nimal@example.com",
			"phone":     "+94771234567",
			"password":  "Str0ng!Pass",
			"role":      "front_desk",
		},
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, outcome.Kind, "errors: %v", outcome.Errors)
	assert.Equal(t, "Staff created", outcome.Notice.Text)
	assert.Equal(t, http.StatusCreated, outcome.Status)
}

func TestDispatchFailureShowsServerMessage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err        error
		status     int
		text       string
		redirected bool
	}{
		"server message": {
			err:    &port.BackendError{Status: http.StatusBadRequest, Message: "Room is occupied", Kind: port.ErrRejected},
			status: http.StatusBadRequest,
			text:   "Room is occupied",
		},
		"no message falls back": {
			err:    &port.BackendError{Status: http.StatusInternalServerError, Kind: port.ErrRejected},
			status: http.StatusInternalServerError,
			text:   "Error updating room status",
		},
		"transport failure": {
			err:    errors.Join(port.ErrUnavailable, errors.New("dial tcp")),
			status: http.StatusBadGateway,
			text:   "Error updating room status",
		},
		"expired session": {
			err:        &port.BackendError{Status: http.StatusUnauthorized, Kind: port.ErrUnauthorized},
			status:     http.StatusUnauthorized,
			text:       "Error updating room status",
			redirected: true,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rig := newTestRig()
			rig.backend.sendErr = tc.err
			outcome, err := rig.dispatcher.Dispatch(context.Background(), rig.dashboard("manager"), testSession(domain.RoleManager), ActionRequest{
				Action: "update-room-status",
				Target: "5",
				Body:   map[string]any{"status": "maintenance"},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if outcome.Kind != OutcomeFailed || outcome.Status != tc.status {
				t.Fatalf("expected failed/%d, got %s/%d", tc.status, outcome.Kind, outcome.Status)
			}
			if outcome.Notice == nil || outcome.Notice.Text != tc.text {
				t.Fatalf("expected notice %q, got %+v", tc.text, outcome.Notice)
			}
			if (outcome.Redirect != nil) != tc.redirected {
				t.Fatalf("expected redirect=%v, got %+v", tc.redirected, outcome.Redirect)
			}
			if len(rig.backend.sentRequests()) != 1 {
				t.Fatalf("expected exactly one send, got %d", len(rig.backend.sentRequests()))
			}
			if len(rig.backend.fetchedPaths()) != 0 {
				t.Fatalf("a failed action must not refresh, fetched %v", rig.backend.fetchedPaths())
			}
		})
	}
}

func TestDispatchMovesQueryFieldsOutOfBody(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	outcome, err := rig.dispatcher.Dispatch(context.Background(), rig.dashboard("admin"), testSession(domain.RoleAdmin), ActionRequest{
		Action:    "delete-booking",
		Target:    "BK-9",
		Confirmed: true,
		Body:      map[string]any{"type": "event"},
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, outcome.Kind, "errors: %v", outcome.Errors)

	sent := rig.backend.sentRequests()
	require.Len(t, sent, 1)
	assert.Equal(t, http.MethodDelete, sent[0].Method)
	assert.Equal(t, "/api/admin/bookings/BK-9", sent[0].Path)
	assert.Equal(t, "event", sent[0].Query.Get("type"))
}

func TestDispatchUploadValidatesFiles(t *testing.T) {
	t.Parallel()

	rig := newTestRig()
	dash := rig.dashboard("admin")
	session := testSession(domain.RoleAdmin)

	outcome, err := rig.dispatcher.Dispatch(context.Background(), dash, session, ActionRequest{Action: "upload-room-photo", Target: "3"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, outcome.Kind)
	assert.Contains(t, outcome.Errors, "photos")

	outcome, err = rig.dispatcher.Dispatch(context.Background(), dash, session, ActionRequest{
		Action: "upload-room-photo",
		Target: "3",
		Files:  []port.FilePart{{Field: "files", Name: "lobby.png", ContentType: "image/png", Size: 1024}},
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeDone, outcome.Kind, "errors: %v", outcome.Errors)
	sent := rig.backend.sentRequests()
	require.Len(t, sent, 1)
	assert.Equal(t, "/api/photos/rooms/3/upload", sent[0].Path)
	assert.Len(t, sent[0].Files, 1)
}

func TestSuccessTextFromPayload(t *testing.T) {
	t.Parallel()

	spec := ActionSpec{Key: "add-staff", SuccessText: "Staff member added successfully"}
	tests := map[string]struct {
		payload any
		want    string
	}{
		"json message":  {payload: map[string]any{"message": "Staff created"}, want: "Staff created"},
		"plain text":    {payload: "User registered successfully", want: "User registered successfully"},
		"html page":     {payload: "<html>ok</html>", want: spec.SuccessText},
		"blank text":    {payload: "  ", want: spec.SuccessText},
		"long text":     {payload: strings.Repeat("x", maxTextMessage+1), want: spec.SuccessText},
		"no payload":    {payload: nil, want: spec.SuccessText},
		"list response": {payload: []any{1, 2}, want: spec.SuccessText},
	}
	for name, tc := range tests {
		if got := successText(spec, tc.payload); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", name, tc.want, got)
		}
	}
}
