package domain

// Staff roles a manager or admin may assign.
var staffRoles = []string{
	string(RoleAdmin),
	string(RoleManager),
	string(RoleFrontDesk),
	string(RolePaymentOfficer),
	string(RoleBackOfficeStaff),
}

var allRoles = append(append([]string{}, staffRoles...), string(RoleGuest))

// ValidateUserForm checks the admin user form. Passwords are optional on update.
func ValidateUserForm(body map[string]any, creating bool) FieldErrors {
	v := NewValidator(body)
	v.Name("firstName", "First name")
	v.Name("lastName", "Last name")
	v.Username("username")
	v.Email("email")
	v.Phone("phone")
	v.Password("password", creating)
	v.OneOf("role", "Please select a role", allRoles...)
	return v.Errors()
}

// ValidateStaffForm checks the manager's add-staff form.
func ValidateStaffForm(body map[string]any) FieldErrors {
	v := NewValidator(body)
	v.Name("firstName", "First name")
	v.Name("lastName", "Last name")
	v.Username("username")
	v.Email("email")
	v.Phone("phone")
	v.Password("password", true)
	v.OneOf("role", "Please select a staff role", staffRoles...)
	return v.Errors()
}

func ValidateRoleChange(body map[string]any) FieldErrors {
	v := NewValidator(body)
	v.OneOf("role", "Please select a role", allRoles...)
	return v.Errors()
}

func ValidateRoomForm(body map[string]any) FieldErrors {
	v := NewValidator(body)
	v.RoomNumber("roomNumber")
	v.PositiveInt("floorNumber", "Floor number", 50)
	v.PositiveInt("capacity", "Capacity", 20)
	v.PositiveNumber("basePrice", "Base price", 1_000_000)
	if !v.present("roomType") {
		v.errs.Add("roomType", "Please select a room type")
	}
	return v.Errors()
}

func ValidateEventSpaceForm(body map[string]any) FieldErrors {
	v := NewValidator(body)
	v.Length("name", "Event space name", 3, 100)
	v.PositiveInt("capacity", "Capacity", 5000)
	v.PositiveNumber("basePrice", "Base price", 10_000_000)
	v.PositiveInt("floorNumber", "Floor number", 50)
	return v.Errors()
}

func ValidateRoomStatus(body map[string]any) FieldErrors {
	v := NewValidator(body)
	v.OneOf("status", "Please select a valid room status",
		string(RoomAvailable), string(RoomOccupied), string(RoomMaintenance), string(RoomOutOfOrder))
	return v.Errors()
}

func ValidatePaymentStatus(body map[string]any) FieldErrors {
	v := NewValidator(body)
	v.OneOf("status", "Please select a valid payment status",
		string(PaymentPending), string(PaymentCompleted), string(PaymentFailed), string(PaymentRefunded))
	return v.Errors()
}

func ValidateRefundForm(body map[string]any) FieldErrors {
	v := NewValidator(body)
	if n, ok := numberValue(v.body["refundAmount"]); !ok || n <= 0 {
		v.errs.Add("refundAmount", "Please enter a valid refund amount")
	}
	if !v.present("refundReason") {
		v.errs.Add("refundReason", "Please provide a refund reason")
	}
	return v.Errors()
}

// ValidateCheckIn requires the booking reference the front desk typed or picked.
func ValidateCheckIn(body map[string]any) FieldErrors {
	v := NewValidator(body)
	v.Required("bookingReference", "Booking reference")
	return v.Errors()
}

// ValidatePhotos checks every file of an upload form.
func ValidatePhotos(field string, files []FileMeta) FieldErrors {
	v := NewValidator(nil)
	if len(files) == 0 {
		v.errs.Add(field, "Please select at least one image")
		return v.Errors()
	}
	for _, f := range files {
		v.Image(field, f)
	}
	return v.Errors()
}
