package usecase

import (
	"strconv"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

const (
	styleSuccess = "success"
	styleDanger  = "danger"
	styleWarning = "warning"
	stylePrimary = "primary"
	styleInfo    = "info"
)

func text(s string) domain.Cell {
	if s == "" {
		return domain.Cell{Text: "-"}
	}
	return domain.Cell{Text: s}
}

func badgeCell(s, badge string) domain.Cell {
	return domain.Cell{Text: s, Badge: badge}
}

func number(n int) domain.Cell { return domain.Cell{Text: strconv.Itoa(n)} }

func money(v float64) domain.Cell {
	return domain.Cell{Text: domain.FormatStat(v, domain.FormatCurrency)}
}

func bookingStatusCell(raw string) domain.Cell {
	status := domain.NormalizeBookingStatus(raw)
	return badgeCell(string(status), status.Badge())
}

func paymentStatusCell(raw string) domain.Cell {
	status := domain.NormalizePaymentStatus(raw)
	return badgeCell(string(status), status.Badge())
}

func roomStatusCell(raw string) domain.Cell {
	status := domain.NormalizeRoomStatus(raw)
	return badgeCell(string(status), status.Badge())
}

// control builds a row button for spec, carrying its confirmation requirement.
func control(spec ActionSpec, label, target, style string) domain.ActionControl {
	return domain.ActionControl{
		Action:          spec.Key,
		Label:           label,
		Target:          target,
		Style:           style,
		RequiresConfirm: spec.RequiresConfirm,
		ConfirmPrompt:   spec.ConfirmPrompt,
	}
}

func bookingDates(b domain.Booking) string {
	if b.IsEvent() {
		return b.EventDate
	}
	if b.CheckInDate == "" {
		return b.CheckOutDate
	}
	if b.CheckOutDate == "" {
		return b.CheckInDate
	}
	return b.CheckInDate + " to " + b.CheckOutDate
}

func roomOrEvent(b domain.Booking) string {
	switch {
	case b.RoomEvent != "":
		return b.RoomEvent
	case b.RoomNumber != "":
		return b.RoomNumber
	default:
		return b.RoomType
	}
}

// bookingType is ROOM or EVENT for the type badge. The delete endpoint takes it lower-cased.
func bookingType(b domain.Booking) string {
	if b.IsEvent() {
		return "EVENT"
	}
	return "ROOM"
}
