package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/villa-booking/internal/model"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const roomColumns = `id, name, type, price, capacity, COALESCE(description, ''), size, beds,
	is_active, images, features, amenities, created_at, updated_at`

// RoomRepo encapsulates all database queries related to rooms, including
// the room_amenities join used by the admin amenity picker.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

func scanRoom(s rowScanner) (*model.Room, error) {
	var r model.Room
	if err := s.Scan(&r.ID, &r.Name, &r.Type, &r.Price, &r.Capacity, &r.Description,
		&r.Size, &r.Beds, &r.IsActive, &r.Images, &r.Features, &r.Amenities,
		&r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Available = r.IsActive
	return &r, nil
}

// List returns rooms ordered by id, optionally filtered on is_active.
func (r *RoomRepo) List(ctx context.Context, active *bool) ([]*model.Room, error) {
	q := "SELECT " + roomColumns + " FROM rooms"
	var args []any
	if active != nil {
		q += " WHERE is_active = ?"
		args = append(args, *active)
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// GetByID returns ErrNotFound when the row does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	room, err := scanRoom(r.db.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM rooms WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return room, err
}

// Create inserts the room, honouring a client supplied id, and returns the
// stored row.
func (r *RoomRepo) Create(ctx context.Context, room model.Room) (*model.Room, error) {
	cols := "name, type, price, capacity, description, size, beds, is_active, images, features, amenities"
	vals := "?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?"
	args := []any{room.Name, room.Type, room.Price, room.Capacity, room.Description,
		room.Size, room.Beds, room.IsActive, room.Images, room.Features, room.Amenities}
	if room.ID != 0 {
		cols = "id, " + cols
		vals = "?, " + vals
		args = append([]any{room.ID}, args...)
	}
	id, err := insert(ctx, r.db, "INSERT INTO rooms ("+cols+") VALUES ("+vals+")", args...)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update applies the fields present in in and returns the fresh row.
func (r *RoomRepo) Update(ctx context.Context, id uint64, in model.RoomInput) (*model.Room, error) {
	u := NewUpdate("rooms")
	Opt(u, "name", in.Name)
	Opt(u, "type", in.Type)
	Opt(u, "price", in.Price)
	Opt(u, "capacity", in.Capacity)
	Opt(u, "description", in.Description)
	Opt(u, "size", in.Size)
	Opt(u, "beds", in.Beds)
	Opt(u, "is_active", in.Active())
	Opt(u, "images", in.Images)
	Opt(u, "features", in.Features)
	Opt(u, "amenities", in.Amenities)
	if err := apply(ctx, r.db, u, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Deactivate is the default delete: the row stays but is hidden from
// active listings.
func (r *RoomRepo) Deactivate(ctx context.Context, id uint64) error {
	return execOne(ctx, r.db, "UPDATE rooms SET is_active = 0 WHERE id = ?", id)
}

// Delete removes the row.  Join rows and bookings referencing the room are
// left in place.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	return execOne(ctx, r.db, "DELETE FROM rooms WHERE id = ?", id)
}

// Count returns the number of rooms, optionally restricted to active ones.
func (r *RoomRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	q := "SELECT COUNT(*) FROM rooms"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	var n int
	err := r.db.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}

// ListAmenities returns the amenities joined to a room.
func (r *RoomRepo) ListAmenities(ctx context.Context, roomID uint64) ([]*model.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+amenityColumnsA+`
		FROM room_amenities ra
		JOIN amenities a ON a.id = ra.amenity_id
		WHERE ra.room_id = ?
		ORDER BY a.display_order, a.id`, roomID)
	if err != nil {
		return nil, err
	}
	return collectAmenities(rows)
}

// AddAmenity links an amenity to a room.  Linking twice is a no-op.
func (r *RoomRepo) AddAmenity(ctx context.Context, roomID, amenityID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO room_amenities (room_id, amenity_id) VALUES (?, ?)", roomID, amenityID)
	return err
}

// RemoveAmenity unlinks an amenity; ErrNotFound when the link is absent.
func (r *RoomRepo) RemoveAmenity(ctx context.Context, roomID, amenityID uint64) error {
	return execOne(ctx, r.db,
		"DELETE FROM room_amenities WHERE room_id = ? AND amenity_id = ?", roomID, amenityID)
}
