package domain

import (
	"net/url"
	"strings"
	"time"
)

const (
	bookingDateLayout  = "2006-01-02"
	ConfirmationPath   = "/booking-confirmation.html"
	BookingFailureText = "Failed to create booking"
)

// BookingForm is the guest-facing booking request as submitted by the page.
type BookingForm struct {
	RoomID                any    `json:"roomId"`
	CheckInDate           string `json:"checkInDate"`
	CheckOutDate          string `json:"checkOutDate"`
	GuestCount            any    `json:"guestCount"`
	SpecialRequests       string `json:"specialRequests"`
	RequireAirportPickup  bool   `json:"requireAirportPickup"`
	FlightNumber          string `json:"flightNumber"`
	SpecialAccommodations string `json:"specialAccommodations"`
	BookingForGuest       bool   `json:"bookingForGuest"`
	GuestFirstName        string `json:"guestFirstName"`
	GuestLastName         string `json:"guestLastName"`
	GuestEmail            string `json:"guestEmail"`
	GuestPhone            string `json:"guestPhone"`
}

// BookingRequest is the body sent to POST /api/bookings.
type BookingRequest struct {
	RoomID                int     `json:"roomId"`
	CheckInDate           string  `json:"checkInDate"`
	CheckOutDate          string  `json:"checkOutDate"`
	GuestCount            int     `json:"guestCount"`
	SpecialRequests       string  `json:"specialRequests"`
	RequireAirportPickup  bool    `json:"requireAirportPickup"`
	FlightNumber          *string `json:"flightNumber"`
	SpecialAccommodations *string `json:"specialAccommodations"`
	GuestEmail            string  `json:"guestEmail,omitempty"`
	GuestFirstName        string  `json:"guestFirstName,omitempty"`
	GuestLastName         string  `json:"guestLastName,omitempty"`
	GuestPhone            string  `json:"guestPhone,omitempty"`
}

// Validate checks the form and, when it passes, returns the backend request.
// Check-in must fall strictly before check-out.
func (f BookingForm) Validate() (BookingRequest, FieldErrors) {
	v := NewValidator(map[string]any{
		"roomId":         f.RoomID,
		"guestCount":     f.GuestCount,
		"checkInDate":    f.CheckInDate,
		"checkOutDate":   f.CheckOutDate,
		"guestFirstName": f.GuestFirstName,
		"guestLastName":  f.GuestLastName,
		"guestEmail":     f.GuestEmail,
		"guestPhone":     f.GuestPhone,
	})

	roomID, _ := v.PositiveInt("roomId", "Room", 0)
	guests, _ := v.PositiveInt("guestCount", "Guest count", 0)

	checkIn, inOK := parseBookingDate(v, "checkInDate", "Check-in date")
	checkOut, outOK := parseBookingDate(v, "checkOutDate", "Check-out date")
	if inOK && outOK && !checkIn.Before(checkOut) {
		v.errs.Add("checkOutDate", "Check-out date must be after check-in date")
	}

	if f.BookingForGuest {
		v.Name("guestFirstName", "First name")
		v.Name("guestLastName", "Last name")
		v.Email("guestEmail")
		if v.Required("guestPhone", "Phone") {
			v.Phone("guestPhone")
		}
	}

	if len(v.errs) > 0 {
		return BookingRequest{}, v.Errors()
	}

	req := BookingRequest{
		RoomID:                roomID,
		CheckInDate:           checkIn.Format(bookingDateLayout),
		CheckOutDate:          checkOut.Format(bookingDateLayout),
		GuestCount:            guests,
		SpecialRequests:       strings.TrimSpace(f.SpecialRequests),
		RequireAirportPickup:  f.RequireAirportPickup,
		FlightNumber:          optional(f.FlightNumber),
		SpecialAccommodations: optional(f.SpecialAccommodations),
	}
	if f.BookingForGuest {
		req.GuestEmail = strings.TrimSpace(f.GuestEmail)
		req.GuestFirstName = strings.TrimSpace(f.GuestFirstName)
		req.GuestLastName = strings.TrimSpace(f.GuestLastName)
		req.GuestPhone = strings.TrimSpace(f.GuestPhone)
	}
	return req, nil
}

// Confirmation is where the page navigates after a booking is accepted.
type Confirmation struct {
	BookingID  string `json:"bookingId"`
	RedirectTo string `json:"redirectTo"`
	Message    string `json:"message"`
}

func NewConfirmation(bookingID string) Confirmation {
	return Confirmation{
		BookingID:  bookingID,
		RedirectTo: ConfirmationPath + "?bookingId=" + url.QueryEscape(bookingID),
		Message:    "Booking created successfully!",
	}
}

func parseBookingDate(v *Validator, field, label string) (time.Time, bool) {
	if !v.Required(field, label) {
		return time.Time{}, false
	}
	t, err := time.Parse(bookingDateLayout, v.Text(field))
	if err != nil {
		v.errs.Add(field, label+" must be a valid date (YYYY-MM-DD)")
		return time.Time{}, false
	}
	return t, true
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
