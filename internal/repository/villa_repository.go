package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/villa-booking/internal/model"
)

const villaColumns = `id, name, location, COALESCE(description, ''), images, COALESCE(amenities_summary, ''),
	phone, email, website, COALESCE(address, ''), check_in_time, check_out_time,
	max_guests, total_rooms, total_bathrooms, COALESCE(policies, ''), updated_at`

// VillaRepo reads and writes the single villa_info row (id = 1).
type VillaRepo struct {
	db *sql.DB
}

func NewVillaRepo(db *sql.DB) *VillaRepo {
	return &VillaRepo{db: db}
}

// Get returns ErrNotFound while the row has never been written.
func (r *VillaRepo) Get(ctx context.Context) (*model.VillaInfo, error) {
	var v model.VillaInfo
	err := r.db.QueryRowContext(ctx, "SELECT "+villaColumns+" FROM villa_info WHERE id = ?", model.VillaID).Scan(
		&v.ID, &v.Name, &v.Location, &v.Description, &v.Images, &v.AmenitiesSummary,
		&v.Phone, &v.Email, &v.Website, &v.Address, &v.CheckInTime, &v.CheckOutTime,
		&v.MaxGuests, &v.TotalRooms, &v.TotalBathrooms, &v.Policies, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update writes the fields present in in, creating the row first when it
// does not exist yet.
func (r *VillaRepo) Update(ctx context.Context, in model.VillaInput) (*model.VillaInfo, error) {
	u := NewUpdate("villa_info")
	Opt(u, "name", in.Name)
	Opt(u, "location", in.Location)
	Opt(u, "description", in.Description)
	Opt(u, "images", in.Images)
	Opt(u, "amenities_summary", in.AmenitiesSummary)
	Opt(u, "phone", in.Phone)
	Opt(u, "email", in.Email)
	Opt(u, "website", in.Website)
	Opt(u, "address", in.Address)
	Opt(u, "check_in_time", in.CheckInTime)
	Opt(u, "check_out_time", in.CheckOutTime)
	Opt(u, "max_guests", in.MaxGuests)
	Opt(u, "total_rooms", in.TotalRooms)
	Opt(u, "total_bathrooms", in.TotalBathrooms)
	Opt(u, "policies", in.Policies)
	q, args, err := u.Build(model.VillaID)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, "INSERT IGNORE INTO villa_info (id, images) VALUES (?, '[]')", model.VillaID); err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
