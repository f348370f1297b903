package model

import (
    "errors"
    "time"
)

// Booking statuses.  Any status may be written over any other.
const (
    StatusPending   = "pending"
    StatusConfirmed = "confirmed"
    StatusCheckedIn = "checked_in"
    StatusCancelled = "cancelled"

    PaymentPending   = "pending"
    PaymentCompleted = "completed"
)

// DateLayout is the wire and storage format of check_in / check_out.
const DateLayout = "2006-01-02"

var (
    ErrInvalidDate      = errors.New("dates must use the YYYY-MM-DD format")
    ErrInvalidDateOrder = errors.New("check_out must be after check_in")
)

// Booking mirrors a bookings row.  Dates travel as YYYY-MM-DD strings.
type Booking struct {
    ID               uint64    `json:"id"`
    BookingReference string    `json:"booking_reference"`
    RoomID           *uint64   `json:"room_id"`
    PackageID        *uint64   `json:"package_id"`
    FirstName        string    `json:"first_name"`
    LastName         string    `json:"last_name"`
    Email            string    `json:"email"`
    Phone            string    `json:"phone"`
    CheckIn          string    `json:"check_in"`
    CheckOut         string    `json:"check_out"`
    Guests           int       `json:"guests"`
    Adults           int       `json:"adults"`
    Children         int       `json:"children"`
    TotalPrice       float64   `json:"total_price"`
    Currency         string    `json:"currency"`
    Status           string    `json:"status"`
    PaymentStatus    string    `json:"payment_status"`
    SpecialRequests  string    `json:"special_requests"`
    Source           string    `json:"source"`
    CreatedAt        time.Time `json:"created_at"`
    UpdatedAt        time.Time `json:"updated_at"`
}

// Nights is the length of the stay; zero when the dates do not parse.
func (b Booking) Nights() int {
    in, err1 := time.Parse(DateLayout, b.CheckIn)
    out, err2 := time.Parse(DateLayout, b.CheckOut)
    if err1 != nil || err2 != nil || !out.After(in) {
        return 0
    }
    return int(out.Sub(in).Hours() / 24)
}

// Within reports whether the stay touches the window [from, to]: it starts
// on or before to and ends on or after from.
func (b Booking) Within(from, to string) bool {
    return b.CheckIn <= to && b.CheckOut >= from
}

// BookingInput is the create / partial update body.  The four fields the
// create path insists on carry a required tag; the check runs on create only.
type BookingInput struct {
    ID               *uint64    `json:"id"`
    BookingReference *string    `json:"booking_reference" validate:"required,notblank"`
    RoomID           OptionalID `json:"room_id"`
    PackageID        OptionalID `json:"package_id"`
    FirstName        *string    `json:"first_name"`
    LastName         *string    `json:"last_name"`
    Email            *string    `json:"email" validate:"required,notblank"`
    Phone            *string    `json:"phone"`
    CheckIn          *string    `json:"check_in" validate:"required,notblank"`
    CheckOut         *string    `json:"check_out" validate:"required,notblank"`
    Guests           *int       `json:"guests"`
    Adults           *int       `json:"adults"`
    Children         *int       `json:"children"`
    TotalPrice       *float64   `json:"total_price"`
    Currency         *string    `json:"currency"`
    Status           *string    `json:"status"`
    PaymentStatus    *string    `json:"payment_status"`
    SpecialRequests  *string    `json:"special_requests"`
    Source           *string    `json:"source"`
}

// NewBooking applies the create defaults: adults falls back to guests,
// children to 0, currency to USD, source to website.  Status and payment
// status always start as pending.
func NewBooking(in BookingInput) Booking {
    b := Booking{
        Guests:        1,
        Currency:      "USD",
        Status:        StatusPending,
        PaymentStatus: PaymentPending,
        Source:        "website",
    }
    if in.ID != nil {
        b.ID = *in.ID
    }
    assign(&b.BookingReference, in.BookingReference)
    b.RoomID = in.RoomID.ID
    b.PackageID = in.PackageID.ID
    assign(&b.FirstName, in.FirstName)
    assign(&b.LastName, in.LastName)
    assign(&b.Email, in.Email)
    assign(&b.Phone, in.Phone)
    assign(&b.CheckIn, in.CheckIn)
    assign(&b.CheckOut, in.CheckOut)
    assign(&b.Guests, in.Guests)
    b.Adults = b.Guests
    assign(&b.Adults, in.Adults)
    assign(&b.Children, in.Children)
    assign(&b.TotalPrice, in.TotalPrice)
    if in.Currency != nil && *in.Currency != "" {
        b.Currency = *in.Currency
    }
    assign(&b.SpecialRequests, in.SpecialRequests)
    if in.Source != nil && *in.Source != "" {
        b.Source = *in.Source
    }
    return b
}

// ValidateStay checks both dates and that check_in is strictly before
// check_out.
func ValidateStay(checkIn, checkOut string) error {
    in, err := time.Parse(DateLayout, checkIn)
    if err != nil {
        return ErrInvalidDate
    }
    out, err := time.Parse(DateLayout, checkOut)
    if err != nil {
        return ErrInvalidDate
    }
    if !in.Before(out) {
        return ErrInvalidDateOrder
    }
    return nil
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
    _, err := time.Parse(DateLayout, s)
    return err == nil
}

func ValidStatus(s string) bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCancelled:
        return true
    }
    return false
}

func ValidPaymentStatus(s string) bool {
    return s == PaymentPending || s == PaymentCompleted
}
