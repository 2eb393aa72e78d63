package usecase

import (
	"net/http"
	"strings"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

const (
	adminAPI  = "/api/admin"
	photosAPI = "/api/photos"
)

const photoField = "photos"

func adminDashboard() *Dashboard {
	d := newDashboard("admin", "Admin", 2000*time.Millisecond, domain.RoleAdmin)

	userPanels := []string{"users"}
	roomPanels := []string{"rooms"}
	spacePanels := []string{"event-spaces"}
	bookingPanels := []string{"bookings", "recent-bookings"}

	createUser := ActionSpec{
		Key:          "create-user",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: adminAPI + "/users"},
		Body:         BodyJSON,
		SuccessText:  "User created successfully",
		FailureText:  "Error creating user",
		Refresh:      userPanels,
		RefreshStats: true,
		Validate:     func(body map[string]any) domain.FieldErrors { return domain.ValidateUserForm(body, true) },
	}
	updateUser := ActionSpec{
		Key:         "update-user",
		Method:      http.MethodPut,
		Endpoint:    Endpoint{PathTemplate: adminAPI + "/users/%s", RequiresTarget: true},
		Body:        BodyJSON,
		SuccessText: "User updated successfully",
		FailureText: "Error updating user",
		Refresh:     userPanels,
		Validate:    func(body map[string]any) domain.FieldErrors { return domain.ValidateUserForm(body, false) },
		Prepare:     dropBlank("password"),
	}
	changeRole := ActionSpec{
		Key:         "change-user-role",
		Method:      http.MethodPut,
		Endpoint:    Endpoint{PathTemplate: adminAPI + "/users/%s/role", RequiresTarget: true},
		Body:        BodyJSON,
		SuccessText: "User role updated successfully",
		FailureText: "Error updating user role",
		Refresh:     userPanels,
		Validate:    domain.ValidateRoleChange,
	}
	deleteUser := ActionSpec{
		Key:             "delete-user",
		Method:          http.MethodDelete,
		Endpoint:        Endpoint{PathTemplate: adminAPI + "/users/%s", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to delete this user? This action cannot be undone.",
		SuccessText:     "User deleted successfully",
		FailureText:     "Error deleting user",
		Refresh:         userPanels,
		RefreshStats:    true,
	}

	createRoom := ActionSpec{
		Key:          "create-room",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: adminAPI + "/rooms"},
		Body:         BodyJSON,
		SuccessText:  "Room created successfully",
		FailureText:  "Error creating room",
		Refresh:      roomPanels,
		RefreshStats: true,
		Validate:     domain.ValidateRoomForm,
	}
	updateRoom := ActionSpec{
		Key:         "update-room",
		Method:      http.MethodPut,
		Endpoint:    Endpoint{PathTemplate: adminAPI + "/rooms/%s", RequiresTarget: true},
		Body:        BodyJSON,
		SuccessText: "Room updated successfully",
		FailureText: "Error updating room",
		Refresh:     roomPanels,
		Validate:    domain.ValidateRoomForm,
	}
	deleteRoom := ActionSpec{
		Key:             "delete-room",
		Method:          http.MethodDelete,
		Endpoint:        Endpoint{PathTemplate: adminAPI + "/rooms/%s", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to delete this room?",
		SuccessText:     "Room deleted successfully",
		FailureText:     "Error deleting room",
		Refresh:         roomPanels,
		RefreshStats:    true,
	}

	createSpace := ActionSpec{
		Key:          "create-event-space",
		Method:       http.MethodPost,
		Endpoint:     Endpoint{PathTemplate: adminAPI + "/event-spaces"},
		Body:         BodyJSON,
		SuccessText:  "Event space created successfully",
		FailureText:  "Error creating event space",
		Refresh:      spacePanels,
		RefreshStats: true,
		Validate:     domain.ValidateEventSpaceForm,
	}
	updateSpace := ActionSpec{
		Key:         "update-event-space",
		Method:      http.MethodPut,
		Endpoint:    Endpoint{PathTemplate: adminAPI + "/event-spaces/%s", RequiresTarget: true},
		Body:        BodyJSON,
		SuccessText: "Event space updated successfully",
		FailureText: "Error updating event space",
		Refresh:     spacePanels,
		Validate:    domain.ValidateEventSpaceForm,
	}
	deleteSpace := ActionSpec{
		Key:             "delete-event-space",
		Method:          http.MethodDelete,
		Endpoint:        Endpoint{PathTemplate: adminAPI + "/event-spaces/%s", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to delete this event space?",
		SuccessText:     "Event space deleted successfully",
		FailureText:     "Error deleting event space",
		Refresh:         spacePanels,
		RefreshStats:    true,
	}

	deleteBooking := ActionSpec{
		Key:             "delete-booking",
		Method:          http.MethodDelete,
		Endpoint:        Endpoint{PathTemplate: adminAPI + "/bookings/%s", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to delete this booking? This action cannot be undone.",
		SuccessText:     "Booking deleted successfully",
		FailureText:     "Error deleting booking",
		Refresh:         bookingPanels,
		RefreshStats:    true,
		QueryFromBody:   []string{"type"},
		Prepare: func(body map[string]any, _ string, _ domain.Session) map[string]any {
			if kind, ok := body["type"].(string); ok {
				body["type"] = strings.ToLower(strings.TrimSpace(kind))
			}
			return body
		},
		Validate: func(body map[string]any) domain.FieldErrors {
			v := domain.NewValidator(body)
			v.OneOf("type", "Booking type must be room or event", "ROOM", "EVENT")
			return v.Errors()
		},
	}

	validatePhotos := func(files []domain.FileMeta) domain.FieldErrors {
		return domain.ValidatePhotos(photoField, files)
	}
	uploadRoomPhoto := ActionSpec{
		Key:           "upload-room-photo",
		Method:        http.MethodPost,
		Endpoint:      Endpoint{PathTemplate: photosAPI + "/rooms/%s/upload", RequiresTarget: true},
		Body:          BodyMultipart,
		SuccessText:   "Photos uploaded successfully",
		FailureText:   "Error uploading photos",
		Refresh:       []string{"room-photos"},
		ValidateFiles: validatePhotos,
	}
	uploadSpacePhoto := ActionSpec{
		Key:           "upload-event-space-photo",
		Method:        http.MethodPost,
		Endpoint:      Endpoint{PathTemplate: photosAPI + "/event-spaces/%s/upload", RequiresTarget: true},
		Body:          BodyMultipart,
		SuccessText:   "Photos uploaded successfully",
		FailureText:   "Error uploading photos",
		ValidateFiles: validatePhotos,
	}
	deletePhoto := ActionSpec{
		Key:             "delete-photo",
		Method:          http.MethodDelete,
		Endpoint:        Endpoint{PathTemplate: photosAPI + "/%s", RequiresTarget: true},
		Body:            BodyNone,
		RequiresConfirm: true,
		ConfirmPrompt:   "Are you sure you want to delete this photo?",
		SuccessText:     "Photo deleted successfully",
		FailureText:     "Error deleting photo",
	}

	d.addActions(
		createUser, updateUser, changeRole, deleteUser,
		createRoom, updateRoom, deleteRoom,
		createSpace, updateSpace, deleteSpace,
		deleteBooking,
		uploadRoomPhoto, uploadSpacePhoto, deletePhoto,
	)

	d.Stats = NewStatsPanel("analytics", "admin statistics",
		Endpoint{PathTemplate: adminAPI + "/analytics/dashboard"},
		domain.StatField{Key: "totalUsers", Label: "Total Users"},
		domain.StatField{Key: "totalRooms", Label: "Total Rooms"},
		domain.StatField{Key: "totalBookings", Label: "Total Bookings"},
		domain.StatField{Key: "totalRevenue", Label: "Total Revenue", Format: domain.FormatCurrency},
		domain.StatField{Key: "occupancyRate", Label: "Occupancy Rate", Format: domain.FormatPercent},
		domain.StatField{Key: "activeUsers", Label: "Active Users"},
	)

	bookingRow := func(b domain.Booking, _ domain.Role) domain.Row {
		ref := b.Reference()
		remove := control(deleteBooking, "Delete", ref, styleDanger)
		remove.Params = map[string]string{"type": strings.ToLower(bookingType(b))}
		return domain.Row{
			Key: ref,
			Cells: []domain.Cell{
				text(ref), text(b.GuestName), badgeCell(bookingType(b), domain.BadgeInfo), text(roomOrEvent(b)), text(bookingDates(b)),
				money(b.TotalAmount), bookingStatusCell(b.Status),
			},
			Actions: []domain.ActionControl{remove},
		}
	}
	bookingColumns := []string{"Reference", "Guest", "Type", "Room/Event", "Date", "Amount", "Status", "Actions"}

	d.addPanels(
		NewResourcePanel(PanelConfig[domain.User]{
			Key:       "users",
			Title:     "Users",
			Entity:    "users",
			Endpoint:  Endpoint{PathTemplate: adminAPI + "/users"},
			Columns:   []string{"Username", "Name", "Email", "Role", "Status", "Last Login", "Actions"},
			EmptyText: "No users found",
			ErrorText: "Error loading users",
			MapRow: func(u domain.User, _ domain.Role) domain.Row {
				id := u.ID.String()
				active := badgeCell("Active", domain.BadgeSuccess)
				if !u.Active() {
					active = badgeCell("Inactive", domain.BadgeSecondary)
				}
				lastLogin := u.LastLogin
				if lastLogin == "" {
					lastLogin = "Never"
				}
				return domain.Row{
					Key: id,
					Cells: []domain.Cell{
						text(u.Username), text(joinNonEmpty(u.FirstName, u.LastName)), text(u.Email), badgeCell(orNA(u.Role), domain.BadgePrimary),
						active, text(lastLogin),
					},
					Actions: []domain.ActionControl{
						control(updateUser, "Edit", id, stylePrimary),
						control(changeRole, "Change Role", id, styleInfo),
						control(deleteUser, "Delete", id, styleDanger),
					},
				}
			},
		}),
		NewResourcePanel(PanelConfig[domain.Room]{
			Key:       "rooms",
			Title:     "Rooms",
			Entity:    "rooms",
			Endpoint:  Endpoint{PathTemplate: adminAPI + "/rooms"},
			Columns:   []string{"Room", "Type", "Floor", "Capacity", "Base Price", "Status", "Actions"},
			EmptyText: "No rooms found",
			ErrorText: "Error loading rooms",
			MapRow: func(r domain.Room, _ domain.Role) domain.Row {
				id := r.ID.String()
				return domain.Row{
					Key: id,
					Cells: []domain.Cell{
						text(r.RoomNumber), text(r.RoomType), number(r.FloorNumber), number(r.Capacity), money(r.BasePrice), roomStatusCell(r.Status),
					},
					Actions: []domain.ActionControl{
						control(updateRoom, "Edit", id, stylePrimary),
						control(uploadRoomPhoto, "Photos", id, styleInfo),
						control(deleteRoom, "Delete", id, styleDanger),
					},
				}
			},
		}),
		NewResourcePanel(PanelConfig[domain.EventSpace]{
			Key:       "event-spaces",
			Title:     "Event Spaces",
			Entity:    "event-spaces",
			Endpoint:  Endpoint{PathTemplate: adminAPI + "/event-spaces"},
			Columns:   []string{"Name", "Capacity", "Floor", "Base Price", "Amenities", "Status", "Actions"},
			EmptyText: "No event spaces found",
			ErrorText: "Error loading event spaces",
			MapRow: func(s domain.EventSpace, _ domain.Role) domain.Row {
				id := s.ID.String()
				return domain.Row{
					Key: id,
					Cells: []domain.Cell{
						text(s.Name), number(s.Capacity), number(s.FloorNumber), money(s.BasePrice), text(s.Amenities), roomStatusCell(s.Status),
					},
					Actions: []domain.ActionControl{
						control(updateSpace, "Edit", id, stylePrimary),
						control(uploadSpacePhoto, "Photos", id, styleInfo),
						control(deleteSpace, "Delete", id, styleDanger),
					},
				}
			},
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "bookings",
			Title:     "Bookings",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: adminAPI + "/bookings", QueryParams: []string{"status", "type"}},
			Columns:   bookingColumns,
			EmptyText: "No bookings found",
			ErrorText: "Error loading bookings",
			MapRow:    bookingRow,
		}),
		NewResourcePanel(PanelConfig[domain.Booking]{
			Key:       "recent-bookings",
			Title:     "Recent Bookings",
			Entity:    "bookings",
			Endpoint:  Endpoint{PathTemplate: adminAPI + "/recent-bookings"},
			Columns:   bookingColumns,
			EmptyText: "No recent bookings",
			ErrorText: "Error loading recent bookings",
			MapRow:    bookingRow,
		}),
		NewResourcePanel(PanelConfig[domain.Photo]{
			Key:       "room-photos",
			Title:     "Room Photos",
			Entity:    "photos",
			Endpoint:  Endpoint{PathTemplate: photosAPI + "/rooms/%s", RequiresTarget: true},
			Columns:   []string{"#", "File", "Link", "Actions"},
			EmptyText: "No photos uploaded yet",
			ErrorText: "Error loading photos",
			MapRow: func(p domain.Photo, _ domain.Role) domain.Row {
				id := p.ID.String()
				return domain.Row{
					Key: id,
					Cells: []domain.Cell{
						text(id), text(p.OriginalFileName), text(p.DownloadURL),
					},
					Actions: []domain.ActionControl{control(deletePhoto, "Delete", id, styleDanger)},
				}
			},
		}),
	)

	d.addCharts(
		NewChartPanel("revenue", "revenue chart", Endpoint{PathTemplate: adminAPI + "/analytics/revenue", QueryParams: []string{"period"}}),
		NewChartPanel("rooms", "room chart", Endpoint{PathTemplate: adminAPI + "/analytics/rooms"}),
		NewChartPanel("users", "user chart", Endpoint{PathTemplate: adminAPI + "/analytics/users"}),
	)
	return d
}

// dropBlank removes optional fields the form left empty so the backend keeps the stored value.
func dropBlank(fields ...string) func(map[string]any, string, domain.Session) map[string]any {
	return func(body map[string]any, _ string, _ domain.Session) map[string]any {
		for _, field := range fields {
			if s, ok := body[field].(string); ok && strings.TrimSpace(s) == "" {
				delete(body, field)
			}
		}
		return body
	}
}
