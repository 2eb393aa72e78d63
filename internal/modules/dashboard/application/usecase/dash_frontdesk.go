package usecase

import (
	"net/http"
	"strconv"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

const frontDeskAPI = "/api/frontdesk"

func frontDeskDashboard() *Dashboard {
	d := newDashboard("frontdesk", "Front Desk", 2000*time.Millisecond, domain.RoleFrontDesk, domain.RoleAdmin)

	bookingPanels := []string{"today-arrivals", "checkins", "checkouts", "pending-bookings", "current-guests", "all-bookings"}

	checkIn := ActionSpec{
		Key:          "checkin",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: frontDeskAPI + "/checkin"},
		Body:         BodyJSON,
		SuccessText:  "Guest checked in successfully",
		FailureText:  "Error checking in guest",
		Refresh:      bookingPanels,
		RefreshStats: true,
		Validate:     domain.ValidateCheckIn,
		Prepare:      withTargetAs("bookingReference"),
	}
	checkOut := ActionSpec{
		Key:             "checkout",
		Method:          http.MethodPost,
		Endpoint:        Endpoint{PathTemplate: frontDeskAPI + "/checkout"},
		Body:            BodyJSON,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to check out this guest?",
		SuccessText:     "Guest checked out successfully",
		FailureText:     "Error processing check-out",
		Refresh:         bookingPanels,
		RefreshStats:    true,
		Validate:        domain.ValidateCheckIn,
		Prepare:         withTargetAs("bookingReference"),
	}
	confirmBooking := ActionSpec{
		Key:          "confirm-booking",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: frontDeskAPI + "/confirm-booking/%s", RequiresTarget: true},
		Body:         BodyNone,
		SuccessText:  "Booking confirmed successfully",
		FailureText:  "Error confirming booking",
		Refresh:      []string{"pending-bookings", "today-arrivals", "all-bookings"},
		RefreshStats: true,
	}
	rejectBooking := ActionSpec{
		Key:             "reject-booking",
		Method:          http.MethodPost,
		Endpoint:        Endpoint{PathTemplate: frontDeskAPI + "/reject-booking/%s", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to reject this booking?",
		SuccessText:     "Booking rejected successfully",
		FailureText:     "Error rejecting booking",
		Refresh:         []string{"pending-bookings", "all-bookings"},
		RefreshStats:    true,
	}
	updateBooking := ActionSpec{
		Key:         "update-booking",
		Method:      http.MethodPut,
		Endpoint:    Endpoint{PathTemplate: frontDeskAPI + "/booking/%s", RequiresTarget: true},
		Body:        BodyJSON,
		SuccessText: "Booking updated successfully",
		FailureText: "Error saving booking changes",
		Refresh:     []string{"all-bookings", "pending-bookings", "today-arrivals"},
		Validate: func(body map[string]any) domain.FieldErrors {
			v := domain.NewValidator(body)
			v.PositiveInt("guestCount", "Guest count", 0)
			return v.Errors()
		},
	}
	d.addActions(checkIn, checkOut, confirmBooking, rejectBooking, updateBooking)

	d.Stats = NewStatsPanel("statistics", "front desk statistics",
		Endpoint{PathTemplate: frontDeskAPI + "/statistics"},
		domain.StatField{Key: "todayCheckins", Label: "Today's Check-ins"},
		domain.StatField{Key: "todayCheckouts", Label: "Today's Check-outs"},
		domain.StatField{Key: "pendingBookings", Label: "Pending Bookings"},
		domain.StatField{Key: "currentGuests", Label: "Current Guests"},
	)

	d.addPanels(
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "today-arrivals",
			Title:     "Today's Arrivals",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: frontDeskAPI + "/today-arrivals"},
			Columns:   []string{"Guest", "Room", "Check-in", "Status", "Actions"},
			EmptyText: "No arrivals today",
			ErrorText: "Unable to load today's arrivals. Please check your connection.",
			MapRow: func(b domain.Booking, _ domain.Role) domain.Row {
				row := domain.Row{Key: b.Reference(), Cells: []domain.Cell{
					text(b.GuestName), text(b.RoomNumber), text(b.CheckInDate), bookingStatusCell(b.Status),
				}}
				if domain.NormalizeBookingStatus(b.Status) == domain.BookingConfirmed {
					row.Actions = append(row.Actions, control(checkIn, "Check In", b.Reference(), styleSuccess))
				}
				return row
			},
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "checkins",
			Title:     "Check-ins",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: frontDeskAPI + "/checkins"},
			Columns:   []string{"Reference", "Guest", "Room", "Check-in", "Status", "Actions"},
			EmptyText: "No check-ins found",
			ErrorText: "Error loading check-ins",
			MapRow: func(b domain.Booking, _ domain.Role) domain.Row {
				return domain.Row{
					Key: b.Reference(),
					Cells: []domain.Cell{
						text(b.Reference()), text(b.GuestName), text(b.RoomNumber), text(b.CheckInDate), bookingStatusCell(b.Status),
					},
					Actions: []domain.ActionControl{control(checkOut, "Check Out", b.Reference(), styleWarning)},
				}
			},
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "checkouts",
			Title:     "Check-outs",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: frontDeskAPI + "/checkouts"},
			Columns:   []string{"Reference", "Guest", "Room", "Check-out", "Status", "Actions"},
			EmptyText: "No check-outs found",
			ErrorText: "Error loading check-outs",
			MapRow: func(b domain.Booking, _ domain.Role) domain.Row {
				row := domain.Row{Key: b.Reference(), Cells: []domain.Cell{
					text(b.Reference()), text(b.GuestName), text(b.RoomNumber), text(b.CheckOutDate), bookingStatusCell(b.Status),
				}}
				if domain.NormalizeBookingStatus(b.Status) == domain.BookingCheckedIn {
					row.Actions = append(row.Actions, control(checkOut, "Check Out", b.Reference(), styleWarning))
				}
				return row
			},
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "pending-bookings",
			Title:     "Pending Bookings",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: frontDeskAPI + "/pending-bookings"},
			Columns:   []string{"Reference", "Guest", "Room/Event", "Date", "Amount", "Status", "Actions"},
			EmptyText: "No pending bookings",
			ErrorText: "Error loading pending bookings",
			MapRow: func(b domain.Booking, _ domain.Role) domain.Row {
				row := domain.Row{Key: b.Reference(), Cells: []domain.Cell{
					text(b.Reference()), text(b.GuestName), text(roomOrEvent(b)), text(bookingDates(b)), money(b.TotalAmount), bookingStatusCell(b.Status),
				}}
				if domain.NormalizeBookingStatus(b.Status).IsPending() {
					row.Actions = []domain.ActionControl{
						control(confirmBooking, "Approve", b.Reference(), styleSuccess),
						control(rejectBooking, "Reject", b.Reference(), styleDanger),
					}
				}
				return row
			},
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "current-guests",
			Title:     "Current Guests",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: frontDeskAPI + "/current-guests"},
			Columns:   []string{"Guest", "Room", "Check-in", "Check-out", "Stay", "Status", "Actions"},
			EmptyText: "No guests currently checked in",
			ErrorText: "Error loading current guests",
			MapRow: func(b domain.Booking, _ domain.Role) domain.Row {
				remaining := 0
				if b.RemainingDays != nil {
					remaining = *b.RemainingDays
				}
				label, badge := domain.StayBadge(remaining)
				checkInText := b.CheckInDate
				if b.DaysElapsed != nil && *b.DaysElapsed > 0 {
					checkInText += " (" + strconv.Itoa(*b.DaysElapsed) + " days ago)"
				}
				return domain.Row{
					Key: b.Reference(),
					Cells: []domain.Cell{
						text(b.GuestName), text(b.RoomNumber), text(checkInText), text(b.CheckOutDate), badgeCell(label, badge), bookingStatusCell(b.Status),
					},
					Actions: []domain.ActionControl{control(checkOut, "Check Out", b.Reference(), styleWarning)},
				}
			},
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "all-bookings",
			Title:     "All Bookings",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: frontDeskAPI + "/all-bookings", QueryParams: []string{"status", "type"}},
			Columns:   []string{"Reference", "Guest", "Type", "Room/Event", "Date", "Guests", "Amount", "Status", "Actions"},
			EmptyText: "No bookings found",
			ErrorText: "Error loading all bookings",
			MapRow: func(b domain.Booking, _ domain.Role) domain.Row {
				typeBadge := domain.BadgePrimary
				if b.IsEvent() {
					typeBadge = domain.BadgeSuccess
				}
				return domain.Row{
					Key: b.Reference(),
					Cells: []domain.Cell{
						text(b.Reference()), text(b.GuestName), badgeCell(bookingType(b), typeBadge), text(roomOrEvent(b)),
						text(bookingDates(b)), number(b.GuestCount), money(b.TotalAmount), bookingStatusCell(b.Status),
					},
					Actions: []domain.ActionControl{control(updateBooking, "Edit", b.Reference(), stylePrimary)},
				}
			},
		}),
	)
	return d
}

// withTargetAs copies the action target into body[field] unless the form already set it.
func withTargetAs(field string) func(map[string]any, string, domain.Session) map[string]any {
	return func(body map[string]any, target string, _ domain.Session) map[string]any {
		if _, ok := body[field]; !ok && target != "" {
			body[field] = target
		}
		return body
	}
}
