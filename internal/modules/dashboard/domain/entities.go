package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// EntityID holds backend identifiers that arrive as JSON numbers or strings.
type EntityID string

func (id *EntityID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = EntityID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*id = EntityID(n.String())
	return nil
}

func (id EntityID) String() string { return string(id) }

type Booking struct {
	ID               EntityID `json:"id"`
	BookingReference string   `json:"bookingReference"`
	GuestName        string   `json:"guestName"`
	GuestEmail       string   `json:"guestEmail"`
	RoomNumber       string   `json:"roomNumber"`
	RoomType         string   `json:"roomType"`
	RoomEvent        string   `json:"roomEvent"`
	Type             string   `json:"type"`
	EventDate        string   `json:"eventDate"`
	EventTime        string   `json:"eventTime"`
	EventType        string   `json:"eventType"`
	CheckInDate      string   `json:"checkInDate"`
	CheckOutDate     string   `json:"checkOutDate"`
	GuestCount       int      `json:"guestCount"`
	TotalAmount      float64  `json:"totalAmount"`
	Status           string   `json:"status"`
	RemainingDays    *int     `json:"remainingDays"`
	DaysElapsed      *int     `json:"daysElapsed"`
}

// Reference prefers the human booking reference over the numeric id.
func (b Booking) Reference() string {
	if ref := strings.TrimSpace(b.BookingReference); ref != "" {
		return ref
	}
	return b.ID.String()
}

// IsEvent reports whether the booking targets an event space rather than a room.
func (b Booking) IsEvent() bool {
	return strings.EqualFold(strings.TrimSpace(b.Type), "EVENT") || b.EventDate != ""
}

type Payment struct {
	ID               EntityID `json:"id"`
	BookingReference string   `json:"bookingReference"`
	GuestName        string   `json:"guestName"`
	RoomOrEventName  string   `json:"roomOrEventName"`
	Amount           float64  `json:"amount"`
	PaymentMethod    string   `json:"paymentMethod"`
	PaymentType      string   `json:"paymentType"`
	PaymentStatus    string   `json:"paymentStatus"`
	TransactionID    string   `json:"transactionId"`
	RefundAmount     *float64 `json:"refundAmount"`
	RefundReason     string   `json:"refundReason"`
	ProcessedBy      string   `json:"processedBy"`
}

type RefundRequest struct {
	ID                EntityID `json:"id"`
	BookingReference  string   `json:"bookingReference"`
	BookingType       string   `json:"bookingType"`
	UserName          string   `json:"userName"`
	UserEmail         string   `json:"userEmail"`
	RefundAmount      float64  `json:"refundAmount"`
	Reason            string   `json:"reason"`
	Status            string   `json:"status"`
	BankName          string   `json:"bankName"`
	AccountHolderName string   `json:"accountHolderName"`
}

type Room struct {
	ID          EntityID `json:"id"`
	RoomNumber  string   `json:"roomNumber"`
	RoomType    string   `json:"roomType"`
	FloorNumber int      `json:"floorNumber"`
	Capacity    int      `json:"capacity"`
	BasePrice   float64  `json:"basePrice"`
	Status      string   `json:"status"`
}

type EventSpace struct {
	ID          EntityID `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	BasePrice   float64  `json:"basePrice"`
	FloorNumber int      `json:"floorNumber"`
	Status      string   `json:"status"`
	Amenities   string   `json:"amenities"`
}

type User struct {
	ID        EntityID `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	IsActive  *bool    `json:"isActive"`
	LastLogin string   `json:"lastLogin"`
}

// Active treats a missing flag as active, matching how the backend omits it for new accounts.
func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

type Notification struct {
	ID             EntityID `json:"id"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Type           string   `json:"type"`
	RecipientName  string   `json:"recipientName"`
	RecipientEmail string   `json:"recipientEmail"`
	IsRead         bool     `json:"isRead"`
	ReadAt         string   `json:"readAt"`
}

type Photo struct {
	ID               EntityID `json:"id"`
	OriginalFileName string   `json:"originalFileName"`
	DownloadURL      string   `json:"downloadUrl"`
}
