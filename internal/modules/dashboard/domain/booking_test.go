package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() BookingForm {
	return BookingForm{
		RoomID:       float64(12),
		CheckInDate:  "2024-06-05",
		CheckOutDate: "2024-06-10",
		GuestCount:   "2",
	}
}

func TestBookingFormValidate(t *testing.T) {
	t.Parallel()

	req, errs := validBooking().Validate()
	require.Empty(t, errs)
	assert.Equal(t, 12, req.RoomID)
	assert.Equal(t, 2, req.GuestCount)
	assert.Equal(t, "2024-06-05", req.CheckInDate)
	assert.Nil(t, req.FlightNumber)
	assert.Empty(t, req.GuestEmail)
}

func TestBookingFormRejectsReversedDates(t *testing.T) {
	t.Parallel()

	form := validBooking()
	form.CheckInDate = "2024-06-10"
	form.CheckOutDate = "2024-06-05"
	_, errs := form.Validate()
	assert.Equal(t, "Check-out date must be after check-in date", errs["checkOutDate"])

	form.CheckOutDate = form.CheckInDate
	_, errs = form.Validate()
	assert.Contains(t, errs, "checkOutDate")
}

func TestBookingFormFieldErrors(t *testing.T) {
	t.Parallel()

	form := BookingForm{RoomID: "abc", CheckInDate: "06/05/2024", GuestCount: float64(0)}
	_, errs := form.Validate()
	assert.Equal(t, "Room must be a positive integer", errs["roomId"])
	assert.Equal(t, "Guest count must be a positive integer", errs["guestCount"])
	assert.Equal(t, "Check-in date must be a valid date (YYYY-MM-DD)", errs["checkInDate"])
	assert.Equal(t, "Check-out date is required", errs["checkOutDate"])
}

func TestBookingFormForGuest(t *testing.T) {
	t.Parallel()

	form := validBooking()
	form.BookingForGuest = true
	_, errs := form.Validate()
	assert.Contains(t, errs, "guestFirstName")
	assert.Contains(t, errs, "guestEmail")
	assert.Equal(t, "Phone is required", errs["guestPhone"])

	form.GuestFirstName = "Kamala"
	form.GuestLastName = "Silva"
	form.GuestEmail = "kamala@example.com"
	form.GuestPhone = "0771234567"
	form.FlightNumber = " UL 504 "
	req, errs := form.Validate()
	require.Empty(t, errs)
	assert.Equal(t, "kamala@example.com", req.GuestEmail)
	require.NotNil(t, req.FlightNumber)
	assert.Equal(t, "UL 504", *req.FlightNumber)
}

func TestNewConfirmation(t *testing.T) {
	t.Parallel()

	c := NewConfirmation("42")
	assert.Equal(t, "/booking-confirmation.html?bookingId=42", c.RedirectTo)
	assert.Equal(t, "42", c.BookingID)
}
