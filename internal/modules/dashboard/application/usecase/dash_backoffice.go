package usecase

import (
	"net/http"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

const backOfficeAPI = "/api/back-office"

func backOfficeDashboard() *Dashboard {
	d := newDashboard("back-office", "Back Office", 2000*time.Millisecond, domain.RoleBackOfficeStaff)

	sendReminder := ActionSpec{
		Key:          "send-payment-reminder",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: backOfficeAPI + "/notifications/payment-reminder"},
		Body:         BodyJSON,
		SuccessText:  "Payment reminder sent successfully",
		FailureText:  "Error sending payment reminder",
		Refresh:      []string{"sent-notifications", "pending-event-payments"},
		RefreshStats: true,
		Prepare:      withTargetAs("bookingId"),
		Validate: func(body map[string]any) domain.FieldErrors {
			v := domain.NewValidator(body)
			v.Required("bookingId", "Booking")
			return v.Errors()
		},
	}
	sendRefundNotice := ActionSpec{
		Key:          "send-refund-notification",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: backOfficeAPI + "/notifications/refund-approved"},
		Body:         BodyJSON,
		SuccessText:  "Refund notification sent successfully",
		FailureText:  "Error sending refund notification",
		Refresh:      []string{"sent-notifications", "approved-refunds"},
		RefreshStats: true,
		Prepare:      withTargetAs("refundRequestId"),
		Validate: func(body map[string]any) domain.FieldErrors {
			v := domain.NewValidator(body)
			v.Required("refundRequestId", "Refund request")
			return v.Errors()
		},
	}
	d.addActions(sendReminder, sendRefundNotice)

	d.Stats = NewStatsPanel("statistics", "back office statistics",
		Endpoint{PathTemplate: backOfficeAPI + "/statistics"},
		domain.StatField{Key: "pendingPaymentReminders", Label: "Pending Payment Reminders"},
		domain.StatField{Key: "approvedRefunds", Label: "Approved Refunds"},
		domain.StatField{Key: "totalEventBookings", Label: "Event Bookings"},
	)

	d.addPanels(
		NewResourcePanel(PanelConfig[domain.Notification]{
			Key:       "sent-notifications",
			Title:     "Sent Notifications",
			Entity:    "notifications",
			Endpoint:  Endpoint{PathTemplate: backOfficeAPI + "/notifications/sent"},
			Columns:   []string{"Title", "Recipient", "Type", "Read"},
			EmptyText: "No notifications sent yet",
			ErrorText: "Error loading notifications",
			MapRow: func(n domain.Notification, _ domain.Role) domain.Row {
				recipient := n.RecipientName
				if n.RecipientEmail != "" {
					recipient = joinNonEmpty(recipient, "<"+n.RecipientEmail+">")
				}
				read := badgeCell("Unread", domain.BadgeWarning)
				if n.IsRead {
					read = badgeCell("Read", domain.BadgeSuccess)
				}
				return domain.Row{Key: n.ID.String(), Cells: []domain.Cell{
					text(n.Title), text(recipient), badgeCell(orNA(n.Type), domain.BadgeInfo), read,
				}}
			},
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "pending-event-payments",
			Title:     "Event Bookings Awaiting Payment",
			Entity:    "event-bookings",
			Endpoint:  Endpoint{PathTemplate: backOfficeAPI + "/event-bookings/pending-payment"},
			Columns:   []string{"Reference", "Customer", "Event", "Date", "Amount", "Status", "Actions"},
			EmptyText: "No event bookings awaiting payment",
			ErrorText: "Error loading event bookings",
			MapRow: func(b domain.Booking, _ domain.Role) domain.Row {
				target := b.ID.String()
				return domain.Row{
					Key: target,
					Cells: []domain.Cell{
						text(b.Reference()), text(b.GuestName), text(joinNonEmpty(b.RoomEvent, b.EventType)), text(joinNonEmpty(b.EventDate, b.EventTime)),
						money(b.TotalAmount), bookingStatusCell(b.Status),
					},
					Actions: []domain.ActionControl{control(sendReminder, "Send Reminder", target, stylePrimary)},
				}
			},
		}),
		NewResourcePanel(PanelConfig[domain.RefundRequest]{
			Key:       "approved-refunds",
			Title:     "Approved Refunds",
			Entity:    "refund-requests",
			Endpoint:  Endpoint{PathTemplate: backOfficeAPI + "/refunds/approved"},
			Columns:   []string{"ID", "Customer", "Booking", "Amount", "Bank", "Account Holder", "Actions"},
			EmptyText: "No approved refunds",
			ErrorText: "Error loading approved refunds",
			MapRow: func(r domain.RefundRequest, _ domain.Role) domain.Row {
				target := r.ID.String()
				return domain.Row{
					Key: target,
					Cells: []domain.Cell{
						text("#" + target), text(r.UserName), text(r.BookingReference), money(r.RefundAmount),
						text(r.BankName), text(r.AccountHolderName),
					},
					Actions: []domain.ActionControl{control(sendRefundNotice, "Notify Customer", target, styleInfo)},
				}
			},
		}),
	)
	return d
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
