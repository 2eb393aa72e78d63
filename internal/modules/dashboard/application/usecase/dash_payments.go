package usecase

import (
	"net/http"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

const (
	paymentOfficerAPI = "/api/payment-officer"
	refundRequestsAPI = "/api/refund-requests"
)

func paymentOfficerDashboard() *Dashboard {
	d := newDashboard("payment-officer", "Payment Officer", 1200*time.Millisecond, domain.RolePaymentOfficer, domain.RoleAdmin)

	paymentPanels := []string{"payments", "pending-payments", "refunded-payments"}

	updateStatus := ActionSpec{
		Key:          "update-payment-status",
		Method:       http.MethodPut,
		Endpoint:     Endpoint{PathTemplate: paymentOfficerAPI + "/payments/%s/status", RequiresTarget: true},
		Body:         BodyJSON,
		SuccessText:  "Payment status updated successfully",
		FailureText:  "Error updating payment status",
		Refresh:      paymentPanels,
		RefreshStats: true,
		Validate:     domain.ValidatePaymentStatus,
		Prepare:      withProcessor,
	}
	processRefund := ActionSpec{
		Key:             "process-refund",
		Method:          http.MethodPost,
		Endpoint:        Endpoint{PathTemplate: paymentOfficerAPI + "/payments/%s/refund", RequiresTarget: true},
		Body:            BodyJSON,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to process this refund?",
		SuccessText:     "Refund processed successfully",
		FailureText:     "Error processing refund",
		Refresh:         paymentPanels,
		RefreshStats:    true,
		Validate:        domain.ValidateRefundForm,
		Prepare:         withProcessor,
	}
	approveRequest := ActionSpec{
		Key:             "approve-refund-request",
		Method:          http.MethodPost,
		Endpoint:        Endpoint{PathTemplate: refundRequestsAPI + "/%s/approve", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to approve this refund request? This will cancel the booking and mark it as refunded.",
		SuccessText:     "Refund request approved successfully! Booking has been cancelled and marked as refunded.",
		FailureText:     "Error approving refund request",
		Refresh:         append([]string{"refund-requests"}, paymentPanels...),
		RefreshStats:    true,
	}
	rejectRequest := ActionSpec{
		Key:             "reject-refund-request",
		Method:          http.MethodPost,
		Endpoint:        Endpoint{PathTemplate: refundRequestsAPI + "/%s/reject", RequiresTarget: true},
		Body:            BodyJSON,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to reject this refund request?",
		SuccessText:     "Refund request rejected",
		FailureText:     "Error rejecting refund request",
		Refresh:         []string{"refund-requests"},
		RefreshStats:    true,
		Validate: func(body map[string]any) domain.FieldErrors {
			v := domain.NewValidator(body)
			v.Required("notes", "Rejection reason")
			return v.Errors()
		},
	}
	d.addActions(updateStatus, processRefund, approveRequest, rejectRequest)

	d.Stats = NewStatsPanel("statistics", "statistics",
		Endpoint{PathTemplate: paymentOfficerAPI + "/statistics"},
		domain.StatField{Key: "totalRevenue", Label: "Total Revenue", Format: domain.FormatCurrency},
		domain.StatField{Key: "pendingPayments", Label: "Pending Payments"},
		domain.StatField{Key: "completedPayments", Label: "Completed Today"},
		domain.StatField{Key: "refundedPayments", Label: "Total Refunds"},
	)

	paymentRow := func(p domain.Payment, _ domain.Role) domain.Row {
		target := p.ID.String()
		typeBadge := domain.BadgePrimary
		if p.PaymentType != "ROOM" {
			typeBadge = domain.BadgeInfo
		}
		row := domain.Row{Key: target, Cells: []domain.Cell{
			text("#" + target), text(p.GuestName), text(p.BookingReference), badgeCell(orNA(p.PaymentType), typeBadge),
			money(p.Amount), text(p.PaymentMethod), paymentStatusCell(p.PaymentStatus),
		}}
		switch domain.NormalizePaymentStatus(p.PaymentStatus) {
		case domain.PaymentPending:
			row.Actions = append(row.Actions, control(updateStatus, "Update Status", target, stylePrimary))
		case domain.PaymentCompleted:
			row.Actions = append(row.Actions,
				control(updateStatus, "Update Status", target, stylePrimary),
				control(processRefund, "Refund", target, styleWarning),
			)
		}
		return row
	}
	paymentColumns := []string{"ID", "Guest", "Booking", "Type", "Amount", "Method", "Status", "Actions"}

	d.addPanels(
		NewResourcePanel(PanelConfig[domain.Payment]{
			Key:       "payments",
			Title:     "Payments",
			Entity:    "payments",
			Endpoint:  Endpoint{PathTemplate: paymentOfficerAPI + "/payments"},
			Columns:   paymentColumns,
			EmptyText: "No payments found",
			ErrorText: "Error loading payments",
			MapRow:    paymentRow,
		}),
		NewResourcePanel(PanelConfig[domain.Payment]{
			Key:       "pending-payments",
			Title:     "Pending Payments",
			Entity:    "payments",
			Endpoint:  Endpoint{PathTemplate: paymentOfficerAPI + "/payments/status/PENDING"},
			Columns:   paymentColumns,
			EmptyText: "No pending payments",
			ErrorText: "Error loading pending payments",
			MapRow:    paymentRow,
		}),
		NewResourcePanel(PanelConfig[domain.Payment]{
			Key:       "refunded-payments",
			Title:     "Refunded Payments",
			Entity:    "payments",
			Endpoint:  Endpoint{PathTemplate: paymentOfficerAPI + "/payments/status/REFUNDED"},
			Columns:   paymentColumns,
			EmptyText: "No refunded payments",
			ErrorText: "Error loading refunded payments",
			MapRow:    paymentRow,
		}),
		NewResourcePanel(PanelConfig[domain.RefundRequest]{
			Key:       "refund-requests",
			Title:     "Refund Requests",
			Entity:    "refund-requests",
			Endpoint:  Endpoint{PathTemplate: refundRequestsAPI + "/pending"},
			Columns:   []string{"ID", "Customer", "Booking", "Type", "Amount", "Bank", "Status", "Actions"},
			EmptyText: "No pending refund requests",
			ErrorText: "Error loading refund requests",
			MapRow: func(r domain.RefundRequest, _ domain.Role) domain.Row {
				target := r.ID.String()
				typeBadge := domain.BadgePrimary
				if r.BookingType != "ROOM" {
					typeBadge = domain.BadgeInfo
				}
				status := domain.NormalizePaymentStatus(r.Status)
				if status == "" {
					status = domain.PaymentPending
				}
				row := domain.Row{Key: target, Cells: []domain.Cell{
					text("#" + target), text(orNA(r.UserName)), text(orNA(r.BookingReference)), badgeCell(orNA(r.BookingType), typeBadge),
					money(r.RefundAmount), text(orNA(r.BankName)), badgeCell(string(status), status.Badge()),
				}}
				if status == domain.PaymentPending {
					row.Actions = []domain.ActionControl{
						control(approveRequest, "Approve", target, styleSuccess),
						control(rejectRequest, "Reject", target, styleDanger),
					}
				}
				return row
			},
		}),
	)

	d.addReports(
		NewStatsPanel("daily", "daily report",
			Endpoint{PathTemplate: paymentOfficerAPI + "/reports/daily", QueryParams: []string{"date"}},
			domain.StatField{Key: "totalPayments", Label: "Total Payments"},
			domain.StatField{Key: "completedPayments", Label: "Completed"},
			domain.StatField{Key: "pendingPayments", Label: "Pending"},
			domain.StatField{Key: "totalRevenue", Label: "Total Revenue", Format: domain.FormatCurrency},
		),
		NewStatsPanel("monthly", "monthly report",
			Endpoint{PathTemplate: paymentOfficerAPI + "/reports/monthly", QueryParams: []string{"month"}},
			domain.StatField{Key: "totalPayments", Label: "Total Payments"},
			domain.StatField{Key: "totalRevenue", Label: "Total Revenue", Format: domain.FormatCurrency},
			domain.StatField{Key: "completedPayments", Label: "Completed"},
			domain.StatField{Key: "refundedPayments", Label: "Refunded"},
		),
	)
	return d
}

// withProcessor stamps the officer's name on the body unless the form supplied one.
func withProcessor(body map[string]any, _ string, session domain.Session) map[string]any {
	if by, _ := body["processedBy"].(string); by == "" {
		body["processedBy"] = session.Profile.DisplayName()
	}
	return body
}

func orNA(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}
