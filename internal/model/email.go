package model

import "time"

// Email record kinds, also the last segment of the record key.
const (
    EmailGuest = "guest"
    EmailAdmin = "admin"
)

// EmailRecordTTL is how long a send record is kept.
const EmailRecordTTL = 30 * 24 * time.Hour

// EmailRecord documents one outbound email for a booking.
type EmailRecord struct {
    ID       string       `json:"id"`
    To       string       `json:"to"`
    Type     string       `json:"type"`
    SentAt   time.Time    `json:"sent_at"`
    ResendID string       `json:"resend_id,omitempty"`
    Error    string       `json:"error,omitempty"`
    Booking  BookingEmail `json:"booking"`
}

// BookingEmail is the booking payload accepted by the email endpoints and
// carried by booking events.  It is a denormalised view of a booking.
type BookingEmail struct {
    BookingReference string  `json:"booking_reference" validate:"required,notblank"`
    FirstName        string  `json:"first_name"`
    LastName         string  `json:"last_name"`
    Email            string  `json:"email"`
    Phone            string  `json:"phone"`
    CheckIn          string  `json:"check_in"`
    CheckOut         string  `json:"check_out"`
    Guests           int     `json:"guests"`
    TotalPrice       float64 `json:"total_price"`
    Currency         string  `json:"currency"`
    RoomName         string  `json:"room_name,omitempty"`
    PackageName      string  `json:"package_name,omitempty"`
    SpecialRequests  string  `json:"special_requests,omitempty"`
    To               string  `json:"to,omitempty"`
}

// EmailFromBooking builds the email payload for a stored booking.
func EmailFromBooking(b Booking) BookingEmail {
    return BookingEmail{
        BookingReference: b.BookingReference,
        FirstName:        b.FirstName,
        LastName:         b.LastName,
        Email:            b.Email,
        Phone:            b.Phone,
        CheckIn:          b.CheckIn,
        CheckOut:         b.CheckOut,
        Guests:           b.Guests,
        TotalPrice:       b.TotalPrice,
        Currency:         b.Currency,
        SpecialRequests:  b.SpecialRequests,
    }
}

// GuestName joins first and last name.
func (b BookingEmail) GuestName() string {
    switch {
    case b.FirstName == "":
        return b.LastName
    case b.LastName == "":
        return b.FirstName
    }
    return b.FirstName + " " + b.LastName
}
