package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/villa-booking/internal/model"
)

const bookingColumns = `id, booking_reference, room_id, package_id, first_name, last_name, email, phone,
	DATE_FORMAT(check_in, '%Y-%m-%d'), DATE_FORMAT(check_out, '%Y-%m-%d'),
	guests, adults, children, total_price, currency, status, payment_status,
	COALESCE(special_requests, ''), source, created_at, updated_at`

// BookingQuery pages through bookings newest first.
type BookingQuery struct {
	Status string
	Limit  int
	Offset int
}

// BookingRepo persists bookings.  The booking_reference column is unique
// and is the idempotency key of the create path.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func scanBooking(s rowScanner) (*model.Booking, error) {
	var b model.Booking
	if err := s.Scan(&b.ID, &b.BookingReference, &b.RoomID, &b.PackageID, &b.FirstName, &b.LastName,
		&b.Email, &b.Phone, &b.CheckIn, &b.CheckOut, &b.Guests, &b.Adults, &b.Children,
		&b.TotalPrice, &b.Currency, &b.Status, &b.PaymentStatus, &b.SpecialRequests, &b.Source,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]*model.Booking, error) {
	defer rows.Close()
	out := []*model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// List returns one page ordered by created_at DESC and the total number of
// matching rows.
func (r *BookingRepo) List(ctx context.Context, q BookingQuery) ([]*model.Booking, int, error) {
	where := ""
	var args []any
	if q.Status != "" {
		where = " WHERE status = ?"
		args = append(args, q.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings"+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectBookings(rows)
	return out, total, err
}

func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *BookingRepo) GetByReference(ctx context.Context, ref string) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE booking_reference = ?", ref))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// SearchByDates returns bookings whose stay touches [from, to]:
// check_in <= to AND check_out >= from.
func (r *BookingRepo) SearchByDates(ctx context.Context, from, to string) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE check_in <= ? AND check_out >= ? ORDER BY check_in, id",
		to, from)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// HasOverlap reports whether roomID already has a non-cancelled stay that
// overlaps [checkIn, checkOut).  A checkout day may be the next check-in.
func (r *BookingRepo) HasOverlap(ctx context.Context, roomID uint64, checkIn, checkOut string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings
		WHERE room_id = ? AND status <> ? AND check_in < ? AND check_out > ?`,
		roomID, model.StatusCancelled, checkOut, checkIn).Scan(&n)
	return n > 0, err
}

// Create inserts the booking and returns the stored row.  A duplicate
// booking_reference yields ErrConflict and nothing is written.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (*model.Booking, error) {
	cols := `booking_reference, room_id, package_id, first_name, last_name, email, phone,
		check_in, check_out, guests, adults, children, total_price, currency, status,
		payment_status, special_requests, source`
	vals := "?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?"
	args := []any{b.BookingReference, b.RoomID, b.PackageID, b.FirstName, b.LastName, b.Email,
		b.Phone, b.CheckIn, b.CheckOut, b.Guests, b.Adults, b.Children, b.TotalPrice, b.Currency,
		b.Status, b.PaymentStatus, b.SpecialRequests, b.Source}
	if b.ID != 0 {
		cols = "id, " + cols
		vals = "?, " + vals
		args = append([]any{b.ID}, args...)
	}
	id, err := insert(ctx, r.db, "INSERT INTO bookings ("+cols+") VALUES ("+vals+")", args...)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update applies the fields present in in.
func (r *BookingRepo) Update(ctx context.Context, id uint64, in model.BookingInput) (*model.Booking, error) {
	u := NewUpdate("bookings")
	// a present null or 0 unlinks the room or package
	if in.RoomID.Present {
		u.Set("room_id", in.RoomID.Value())
	}
	if in.PackageID.Present {
		u.Set("package_id", in.PackageID.Value())
	}
	Opt(u, "first_name", in.FirstName)
	Opt(u, "last_name", in.LastName)
	Opt(u, "email", in.Email)
	Opt(u, "phone", in.Phone)
	Opt(u, "check_in", in.CheckIn)
	Opt(u, "check_out", in.CheckOut)
	Opt(u, "guests", in.Guests)
	Opt(u, "adults", in.Adults)
	Opt(u, "children", in.Children)
	Opt(u, "total_price", in.TotalPrice)
	Opt(u, "currency", in.Currency)
	Opt(u, "status", in.Status)
	Opt(u, "payment_status", in.PaymentStatus)
	Opt(u, "special_requests", in.SpecialRequests)
	Opt(u, "source", in.Source)
	if err := apply(ctx, r.db, u, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus sets status and, when given, payment_status in one
// statement.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string, payment *string) (*model.Booking, error) {
	u := NewUpdate("bookings").Set("status", status)
	Opt(u, "payment_status", payment)
	if err := apply(ctx, r.db, u, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	return execOne(ctx, r.db, "DELETE FROM bookings WHERE id = ?", id)
}
