package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/villa-booking/internal/model"
)

const amenityColumns = `id, name, category, COALESCE(description, ''), icon, is_featured,
	is_active, display_order, created_at, updated_at`

// amenityColumnsA is amenityColumns qualified with the alias a, for joins.
const amenityColumnsA = `a.id, a.name, a.category, COALESCE(a.description, ''), a.icon, a.is_featured,
	a.is_active, a.display_order, a.created_at, a.updated_at`

// AmenityFilter narrows amenity listings.  Zero values do not filter.
type AmenityFilter struct {
	Category   string
	Featured   bool
	ActiveOnly bool
}

type AmenityRepo struct {
	db *sql.DB
}

func NewAmenityRepo(db *sql.DB) *AmenityRepo {
	return &AmenityRepo{db: db}
}

func scanAmenity(s rowScanner) (*model.Amenity, error) {
	var a model.Amenity
	if err := s.Scan(&a.ID, &a.Name, &a.Category, &a.Description, &a.Icon, &a.IsFeatured,
		&a.IsActive, &a.DisplayOrder, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAmenities(rows *sql.Rows) ([]*model.Amenity, error) {
	defer rows.Close()
	out := []*model.Amenity{}
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// List returns amenities ordered for display.
func (r *AmenityRepo) List(ctx context.Context, f AmenityFilter) ([]*model.Amenity, error) {
	q := "SELECT " + amenityColumns + " FROM amenities WHERE 1=1"
	var args []any
	if f.Category != "" {
		q += " AND category = ?"
		args = append(args, f.Category)
	}
	if f.Featured {
		q += " AND is_featured = 1"
	}
	if f.ActiveOnly {
		q += " AND is_active = 1"
	}
	q += " ORDER BY display_order, name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectAmenities(rows)
}

func (r *AmenityRepo) GetByID(ctx context.Context, id uint64) (*model.Amenity, error) {
	a, err := scanAmenity(r.db.QueryRowContext(ctx, "SELECT "+amenityColumns+" FROM amenities WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *AmenityRepo) Create(ctx context.Context, a model.Amenity) (*model.Amenity, error) {
	cols := "name, category, description, icon, is_featured, is_active, display_order"
	vals := "?, ?, ?, ?, ?, ?, ?"
	args := []any{a.Name, a.Category, a.Description, a.Icon, a.IsFeatured, a.IsActive, a.DisplayOrder}
	if a.ID != 0 {
		cols = "id, " + cols
		vals = "?, " + vals
		args = append([]any{a.ID}, args...)
	}
	id, err := insert(ctx, r.db, "INSERT INTO amenities ("+cols+") VALUES ("+vals+")", args...)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *AmenityRepo) Update(ctx context.Context, id uint64, in model.AmenityInput) (*model.Amenity, error) {
	u := NewUpdate("amenities")
	Opt(u, "name", in.Name)
	Opt(u, "category", in.Category)
	Opt(u, "description", in.Description)
	Opt(u, "icon", in.Icon)
	Opt(u, "is_featured", in.IsFeatured)
	Opt(u, "is_active", in.IsActive)
	Opt(u, "display_order", in.DisplayOrder)
	if err := apply(ctx, r.db, u, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the amenity row only.  room_amenities and
// package_amenities rows pointing at it are left orphaned.
func (r *AmenityRepo) Delete(ctx context.Context, id uint64) error {
	return execOne(ctx, r.db, "DELETE FROM amenities WHERE id = ?", id)
}

func (r *AmenityRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM amenities").Scan(&n)
	return n, err
}
