package usecase

import (
	"net/http"
	"strconv"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

const managerAPI = "/api/manager"

func managerDashboard() *Dashboard {
	d := newDashboard("manager", "Manager", 2000*time.Millisecond, domain.RoleManager)

	approveBooking := ActionSpec{
		Key:             "approve-booking",
		Method:          http.MethodPut,
		Endpoint:        Endpoint{PathTemplate: managerAPI + "/bookings/%s/approve", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to approve this booking?",
		SuccessText:     "Booking approved successfully",
		FailureText:     "Error approving booking",
		Refresh:         []string{"bookings", "pending-bookings"},
		RefreshStats:    true,
	}
	cancelBooking := ActionSpec{
		Key:             "cancel-booking",
		Method:          http.MethodPut,
		Endpoint:        Endpoint{PathTemplate: managerAPI + "/bookings/%s/cancel", RequiresTarget: true},
		Body:            BodyJSON,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to cancel this booking?",
		SuccessText:     "Booking cancelled successfully",
		FailureText:     "Error cancelling booking",
		Refresh:         []string{"bookings", "pending-bookings"},
		RefreshStats:    true,
		Validate: func(body map[string]any) domain.FieldErrors {
			v := domain.NewValidator(body)
			v.Required("reason", "Cancellation reason")
			return v.Errors()
		},
	}
	addStaff := ActionSpec{
		Key:          "add-staff",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: managerAPI + "/staff"},
		Body:         BodyJSON,
		SuccessText:  "Staff member added successfully",
		FailureText:  "Error adding staff member",
		Refresh:      []string{"staff"},
		RefreshStats: true,
		Validate:     domain.ValidateStaffForm,
	}
	setStaffActive := ActionSpec{
		Key:             "set-staff-active",
		Method:          http.MethodPut,
		Endpoint:        Endpoint{PathTemplate: managerAPI + "/staff/%s", RequiresTarget: true},
		Body:            BodyJSON,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to change this staff member's status?",
		SuccessText:     "Staff member updated successfully",
		FailureText:     "Error updating staff member",
		Refresh:         []string{"staff"},
		RefreshStats:    true,
		Validate: func(body map[string]any) domain.FieldErrors {
			errs := domain.FieldErrors{}
			if _, ok := body["isActive"].(bool); !ok {
				errs.Add("isActive", "Please choose active or inactive")
			}
			return errs
		},
	}
	updateRoomStatus := ActionSpec{
		Key:          "update-room-status",
		Method:       http.MethodPut,
		Endpoint:     Endpoint{PathTemplate: managerAPI + "/rooms/%s/status", RequiresTarget: true},
		Body:         BodyJSON,
		SuccessText:  "Room status updated successfully",
		FailureText:  "Error updating room status",
		Refresh:      []string{"rooms"},
		RefreshStats: true,
		Validate:     domain.ValidateRoomStatus,
	}
	d.addActions(approveBooking, cancelBooking, addStaff, setStaffActive, updateRoomStatus)

	d.Stats = NewStatsPanel("dashboard", "dashboard data",
		Endpoint{PathTemplate: managerAPI + "/dashboard"},
		domain.StatField{Key: "occupancyRate", Label: "Occupancy Rate", Format: domain.FormatPercent},
		domain.StatField{Key: "todayRevenue", Label: "Today's Revenue", Format: domain.FormatCurrency},
		domain.StatField{Key: "todayCheckIns", Label: "Today's Check-ins"},
		domain.StatField{Key: "pendingBookings", Label: "Pending Bookings"},
		domain.StatField{Key: "availableRooms", Label: "Available Rooms"},
		domain.StatField{Key: "occupiedRooms", Label: "Occupied Rooms"},
		domain.StatField{Key: "maintenanceRooms", Label: "Maintenance Rooms"},
		domain.StatField{Key: "totalRooms", Label: "Total Rooms"},
		domain.StatField{Key: "frontDeskStaff", Label: "Front Desk Staff"},
		domain.StatField{Key: "paymentOfficers", Label: "Payment Officers"},
	)

	bookingRow := func(b domain.Booking, _ domain.Role) domain.Row {
		target := b.ID.String()
		row := domain.Row{Key: target, Cells: []domain.Cell{
			text(b.Reference()), text(b.GuestName), text(b.RoomNumber), text(b.CheckInDate), text(b.CheckOutDate),
			money(b.TotalAmount), bookingStatusCell(b.Status),
		}}
		if domain.NormalizeBookingStatus(b.Status).IsPending() {
			row.Actions = []domain.ActionControl{
				control(approveBooking, "Approve", target, styleSuccess),
				control(cancelBooking, "Cancel", target, styleDanger),
			}
		}
		return row
	}
	bookingColumns := []string{"Reference", "Guest", "Room", "Check-in", "Check-out", "Amount", "Status", "Actions"}

	d.addPanels(
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "bookings",
			Title:     "Bookings",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: managerAPI + "/bookings"},
			Columns:   bookingColumns,
			EmptyText: "No bookings found",
			ErrorText: "Error loading bookings",
			MapRow:    bookingRow,
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "pending-bookings",
			Title:     "Pending Bookings",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: managerAPI + "/bookings/pending"},
			Columns:   bookingColumns,
			EmptyText: "No pending bookings",
			ErrorText: "Error loading pending bookings",
			MapRow:    bookingRow,
		}),
		NewResourcePanel(PanelConfig[domain.User]{
			Key:       "staff",
			Title:     "Staff",
			Entity:    "users",
			Endpoint:  Endpoint{PathTemplate: managerAPI + "/staff"},
			Columns:   []string{"Name", "Username", "Email", "Role", "Status", "Actions"},
			EmptyText: "No staff members found",
			ErrorText: "Error loading staff",
			MapRow: func(u domain.User, viewer domain.Role) domain.Row {
				status := badgeCell("Active", domain.BadgeSuccess)
				label, style := "Deactivate", styleDanger
				if !u.Active() {
					status = badgeCell("Inactive", domain.BadgeDanger)
					label, style = "Activate", styleSuccess
				}
				row := domain.Row{Key: u.ID.String(), Cells: []domain.Cell{
					text(u.FirstName + " " + u.LastName), text(u.Username), text(u.Email),
					badgeCell(string(domain.ParseRole(u.Role)), domain.BadgePrimary), status,
				}}
				// Only an admin viewer may toggle another admin.
				if domain.ParseRole(u.Role) != domain.RoleAdmin || viewer == domain.RoleAdmin {
					row.Actions = []domain.ActionControl{control(setStaffActive, label, u.ID.String(), style)}
				}
				return row
			},
		}),
		NewResourcePanel(PanelConfig[domain.Room]{
			Key:       "rooms",
			Title:     "Rooms",
			Entity:    "rooms",
			Endpoint:  Endpoint{PathTemplate: managerAPI + "/rooms"},
			Columns:   []string{"Room", "Type", "Floor", "Capacity", "Base Price", "Status", "Actions"},
			EmptyText: "No rooms found",
			ErrorText: "Error loading rooms",
			MapRow: func(r domain.Room, _ domain.Role) domain.Row {
				return domain.Row{
					Key: r.ID.String(),
					Cells: []domain.Cell{
						text(r.RoomNumber), text(r.RoomType), text(strconv.Itoa(r.FloorNumber)), number(r.Capacity),
						money(r.BasePrice), roomStatusCell(r.Status),
					},
					Actions: []domain.ActionControl{control(updateRoomStatus, "Change Status", r.ID.String(), stylePrimary)},
				}
			},
		}),
	)

	d.addCharts(
		NewChartPanel("revenue", "revenue analytics", Endpoint{PathTemplate: managerAPI + "/analytics/revenue"}),
		NewChartPanel("occupancy", "occupancy analytics", Endpoint{PathTemplate: managerAPI + "/analytics/occupancy"}),
	)
	return d
}
