package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

const bookingsPath = "/api/bookings"

// BookingFailedError is returned when the backend refuses or cannot take a booking.
// Message is what the guest sees.
type BookingFailedError struct {
	Message string
	Err     error
}

func (e *BookingFailedError) Error() string {
	return fmt.Sprintf("booking failed: %s: %v", e.Message, e.Err)
}

func (e *BookingFailedError) Unwrap() error { return e.Err }

func (e *BookingFailedError) PublicMessage() string { return e.Message }

// BookingUseCase submits the public booking form.
type BookingUseCase struct {
	guard   *SessionGuard
	policy  GuardPolicy
	backend port.Mutator
	notices *NoticeBoard
}

func NewBookingUseCase(guard *SessionGuard, policy GuardPolicy, backend port.Mutator, notices *NoticeBoard) *BookingUseCase {
	return &BookingUseCase{guard: guard, policy: policy, backend: backend, notices: notices}
}

// Submit validates the form, posts it once and returns where the page goes next.
// Field errors come back as *domain.ValidationError and nothing is sent.
func (uc *BookingUseCase) Submit(ctx context.Context, session domain.Session, form domain.BookingForm) (domain.Confirmation, error) {
	if decision := uc.guard.Check(session, uc.policy); !decision.Allowed {
		return domain.Confirmation{}, &DeniedError{Decision: decision}
	}
	req, errs := form.Validate()
	if err := errs.Err(); err != nil {
		return domain.Confirmation{}, err
	}

	result, err := uc.backend.Send(ctx, session.Token, port.MutationRequest{
		Method: http.MethodPost,
		Path:   bookingsPath,
		Body:   req,
	})
	if err != nil {
		message := port.ServerMessage(err)
		if message == "" {
			message = domain.BookingFailureText
		}
		slog.Warn("booking submission failed", slog.Int("roomId", req.RoomID), slog.Any("error", err))
		uc.notices.Push(ctx, session.ID, domain.NoticeDanger, message)
		return domain.Confirmation{}, &BookingFailedError{Message: message, Err: err}
	}

	bookingID := normalization.AsString(normalization.MapFromPayload(result.Payload)["bookingId"])
	if bookingID == "" {
		uc.notices.Push(ctx, session.ID, domain.NoticeDanger, domain.BookingFailureText)
		return domain.Confirmation{}, &BookingFailedError{Message: domain.BookingFailureText, Err: ErrMalformedPayload}
	}
	confirmation := domain.NewConfirmation(bookingID)
	uc.notices.Push(ctx, session.ID, domain.NoticeSuccess, confirmation.Message)
	slog.Info("booking created", slog.String("bookingId", bookingID), slog.Int("roomId", req.RoomID))
	return confirmation, nil
}
