// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/iliyamo/villa-booking/internal/model"

// BookingCreatedQueue is the durable queue booking events are published to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking row is inserted.  It
// carries enough of the booking for consumers to log and notify without
// querying the database.
type BookingCreatedEvent struct {
    BookingID uint64             `json:"booking_id"`
    RoomID    *uint64            `json:"room_id,omitempty"`
    PackageID *uint64            `json:"package_id,omitempty"`
    Status    string             `json:"status"`
    Source    string             `json:"source"`
    Booking   model.BookingEmail `json:"booking"`
    CreatedAt string             `json:"created_at"`
}

// NewBookingCreatedEvent builds the event for a stored booking.
func NewBookingCreatedEvent(b model.Booking) BookingCreatedEvent {
    return BookingCreatedEvent{
        BookingID: b.ID,
        RoomID:    b.RoomID,
        PackageID: b.PackageID,
        Status:    b.Status,
        Source:    b.Source,
        Booking:   model.EmailFromBooking(b),
        CreatedAt: b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
    }
}
