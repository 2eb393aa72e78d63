package domain

import "strings"

// BookingStatus is the lifecycle of a room or event booking as exposed by the backend.
type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCancelled  BookingStatus = "CANCELLED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
)

// PaymentStatus is the settlement state of a payment or refund request.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// RoomStatus is the housekeeping state of a room or event space.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomOutOfOrder  RoomStatus = "OUT_OF_ORDER"
)

// Badge colours understood by the page.
const (
	BadgeSuccess   = "success"
	BadgeWarning   = "warning"
	BadgeDanger    = "danger"
	BadgeInfo      = "info"
	BadgeSecondary = "secondary"
	BadgeDark      = "dark"
	BadgePrimary   = "primary"
)

var bookingBadges = map[BookingStatus]string{
	BookingPending:    BadgeWarning,
	BookingConfirmed:  BadgeSuccess,
	BookingCancelled:  BadgeDanger,
	BookingCheckedIn:  BadgeInfo,
	BookingCheckedOut: BadgeSecondary,
}

var paymentBadges = map[PaymentStatus]string{
	PaymentPending:   BadgeWarning,
	PaymentCompleted: BadgeSuccess,
	PaymentFailed:    BadgeDanger,
	PaymentRefunded:  BadgeInfo,
}

var roomBadges = map[RoomStatus]string{
	RoomAvailable:   BadgeSuccess,
	RoomOccupied:    BadgeDanger,
	RoomMaintenance: BadgeWarning,
	RoomOutOfOrder:  BadgeDark,
}

// NormalizeBookingStatus upper-cases and trims the value. Unknown statuses are kept as-is.
func NormalizeBookingStatus(raw string) BookingStatus {
	return BookingStatus(normalizeStatus(raw))
}

func NormalizePaymentStatus(raw string) PaymentStatus {
	return PaymentStatus(normalizeStatus(raw))
}

func NormalizeRoomStatus(raw string) RoomStatus {
	return RoomStatus(normalizeStatus(raw))
}

func (s BookingStatus) Badge() string { return badgeOr(bookingBadges[s]) }
func (s PaymentStatus) Badge() string { return badgeOr(paymentBadges[s]) }
func (s RoomStatus) Badge() string    { return badgeOr(roomBadges[s]) }

// IsPending is the only state that exposes approve/reject controls.
func (s BookingStatus) IsPending() bool { return s == BookingPending }

func normalizeStatus(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	return strings.ReplaceAll(trimmed, " ", "_")
}

func badgeOr(badge string) string {
	if badge == "" {
		return BadgeSecondary
	}
	return badge
}

// StayBadge classifies a current guest by remaining nights.
func StayBadge(remainingDays int) (label, badge string) {
	switch {
	case remainingDays <= 0:
		return "Overdue", BadgeDanger
	case remainingDays <= 1:
		return "Check-out Soon", BadgeWarning
	default:
		return "On Track", BadgeSuccess
	}
}
