package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

func validBookingForm() domain.BookingForm {
	return domain.BookingForm{
		RoomID:       "4",
		CheckInDate:  "2026-12-01",
		CheckOutDate: "2026-12-04",
		GuestCount:   2,
		FlightNumber: "  ",
	}
}

func newBookingRig() (*BookingUseCase, *fakeBackend, *NoticeBoard) {
	backend := newFakeBackend()
	notices, _ := newTestNoticeBoard(nil)
	uc := NewBookingUseCase(NewSessionGuard(nil), NewCatalog().BookingPolicy(), backend, notices)
	return uc, backend, notices
}

func TestBookingSubmitSuccess(t *testing.T) {
	t.Parallel()

	uc, backend, notices := newBookingRig()
	backend.result = port.MutationResult{Status: http.StatusCreated, Payload: map[string]any{"bookingId": 381}}
	session := testSession(domain.RoleGuest)

	confirmation, err := uc.Submit(context.Background(), session, validBookingForm())
	require.NoError(t, err)
	assert.Equal(t, "381", confirmation.BookingID)
	assert.Equal(t, "/booking-confirmation.html?bookingId=381", confirmation.RedirectTo)

	sent := backend.sentRequests()
	require.Len(t, sent, 1)
	assert.Equal(t, "/api/bookings", sent[0].Path)
	req, ok := sent[0].Body.(domain.BookingRequest)
	require.True(t, ok)
	assert.Equal(t, 4, req.RoomID)
	assert.Nil(t, req.FlightNumber)

	listed := notices.List(session.ID)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.NoticeSuccess, listed[0].Kind)
}

func TestBookingSubmitInvalidSendsNothing(t *testing.T) {
	t.Parallel()

	uc, backend, _ := newBookingRig()
	form := validBookingForm()
	form.CheckOutDate = form.CheckInDate

	_, err := uc.Submit(context.Background(), testSession(domain.RoleGuest), form)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "checkOutDate")
	assert.Empty(t, backend.sentRequests())
}

func TestBookingSubmitDenied(t *testing.T) {
	t.Parallel()

	uc, backend, _ := newBookingRig()
	_, err := uc.Submit(context.Background(), domain.Session{}, validBookingForm())
	var denied *DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "Please log in to continue.", denied.Decision.Notice.Text)

	_, err = uc.Submit(context.Background(), domain.Session{ID: "x", Token: "tok"}, validBookingForm())
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "Access denied. Guest role required.", denied.Decision.Notice.Text)
	assert.Empty(t, backend.sentRequests())
}

func TestBookingSubmitFailure(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err     error
		payload any
		message string
	}{
		"server message": {
			err:     &port.BackendError{Status: http.StatusConflict, Message: "Room not available for selected dates", Kind: port.ErrRejected},
			message: "Room not available for selected dates",
		},
		"silent failure": {
			err:     errors.Join(port.ErrUnavailable, errors.New("timeout")),
			message: domain.BookingFailureText,
		},
		"missing booking id": {
			payload: map[string]any{"status": "ok"},
			message: domain.BookingFailureText,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			uc, backend, notices := newBookingRig()
			backend.sendErr = tc.err
			backend.result = port.MutationResult{Status: http.StatusOK, Payload: tc.payload}
			session := testSession(domain.RoleFrontDesk)

			_, err := uc.Submit(context.Background(), session, validBookingForm())
			var failed *BookingFailedError
			if !errors.As(err, &failed) {
				t.Fatalf("expected BookingFailedError, got %v", err)
			}
			if failed.PublicMessage() != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, failed.PublicMessage())
			}
			listed := notices.List(session.ID)
			if len(listed) != 1 || listed[0].Kind != domain.NoticeDanger || listed[0].Text != tc.message {
				t.Fatalf("expected one danger notice, got %+v", listed)
			}
		})
	}
}

func TestBookingSubmitAdmitsAnyKnownRole(t *testing.T) {
	t.Parallel()

	for _, role := range []domain.Role{domain.RoleGuest, domain.RoleFrontDesk, domain.RoleManager, domain.RoleAdmin} {
		uc, backend, _ := newBookingRig()
		backend.result = port.MutationResult{Status: http.StatusCreated, Payload: map[string]any{"bookingId": 12}}
		if _, err := uc.Submit(context.Background(), testSession(role), validBookingForm()); err != nil {
			t.Fatalf("%s: expected booking to be admitted, got %v", role, err)
		}
	}
}
