package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/villa-booking/internal/model"
)

const packageColumns = `id, name, COALESCE(description, ''), package_type, marketing_category,
	base_price, discount_percentage, min_nights, max_nights,
	DATE_FORMAT(valid_from, '%Y-%m-%d'), DATE_FORMAT(valid_until, '%Y-%m-%d'),
	max_guests, inclusions, COALESCE(terms, ''), is_active, created_at, updated_at`

const roomColumnsR = `r.id, r.name, r.type, r.price, r.capacity, COALESCE(r.description, ''), r.size, r.beds,
	r.is_active, r.images, r.features, r.amenities, r.created_at, r.updated_at`

// PackageFilter narrows package listings.  Empty fields do not filter.
type PackageFilter struct {
	Active   *bool
	Category string // marketing category
	Type     string // package_type
}

// PackageRepo covers packages and their three join tables: package_rooms,
// package_inclusions and package_amenities.
type PackageRepo struct {
	db *sql.DB
}

func NewPackageRepo(db *sql.DB) *PackageRepo {
	return &PackageRepo{db: db}
}

func scanPackage(s rowScanner) (*model.Package, error) {
	var p model.Package
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.PackageType, &p.MarketingCategory,
		&p.BasePrice, &p.DiscountPercentage, &p.MinNights, &p.MaxNights,
		&p.ValidFrom, &p.ValidUntil, &p.MaxGuests, &p.Inclusions, &p.Terms, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepo) List(ctx context.Context, f PackageFilter) ([]*model.Package, error) {
	q := "SELECT " + packageColumns + " FROM packages WHERE 1=1"
	var args []any
	if f.Active != nil {
		q += " AND is_active = ?"
		args = append(args, *f.Active)
	}
	if f.Category != "" {
		q += " AND marketing_category = ?"
		args = append(args, f.Category)
	}
	if f.Type != "" {
		q += " AND package_type = ?"
		args = append(args, f.Type)
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Categories returns the distinct marketing categories of active packages
// with the number of packages in each.
func (r *PackageRepo) Categories(ctx context.Context) ([]model.CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT marketing_category, COUNT(*)
		FROM packages
		WHERE marketing_category <> '' AND is_active = 1
		GROUP BY marketing_category
		ORDER BY marketing_category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CategoryCount{}
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (*model.Package, error) {
	p, err := scanPackage(r.db.QueryRowContext(ctx, "SELECT "+packageColumns+" FROM packages WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PackageRepo) Create(ctx context.Context, p model.Package) (*model.Package, error) {
	cols := `name, description, package_type, marketing_category, base_price, discount_percentage,
		min_nights, max_nights, valid_from, valid_until, max_guests, inclusions, terms, is_active`
	vals := "?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?"
	args := []any{p.Name, p.Description, p.PackageType, p.MarketingCategory, p.BasePrice,
		p.DiscountPercentage, p.MinNights, p.MaxNights, p.ValidFrom, p.ValidUntil, p.MaxGuests,
		p.Inclusions, p.Terms, p.IsActive}
	if p.ID != 0 {
		cols = "id, " + cols
		vals = "?, " + vals
		args = append([]any{p.ID}, args...)
	}
	id, err := insert(ctx, r.db, "INSERT INTO packages ("+cols+") VALUES ("+vals+")", args...)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PackageRepo) Update(ctx context.Context, id uint64, in model.PackageInput) (*model.Package, error) {
	u := NewUpdate("packages")
	Opt(u, "name", in.Name)
	Opt(u, "description", in.Description)
	Opt(u, "package_type", in.PackageType)
	Opt(u, "marketing_category", in.MarketingCategory)
	Opt(u, "base_price", in.BasePrice)
	Opt(u, "discount_percentage", in.DiscountPercentage)
	Opt(u, "min_nights", in.MinNights)
	Opt(u, "max_nights", in.MaxNights)
	if in.ValidFrom != nil {
		u.Set("valid_from", nullDate(*in.ValidFrom))
	}
	if in.ValidUntil != nil {
		u.Set("valid_until", nullDate(*in.ValidUntil))
	}
	Opt(u, "max_guests", in.MaxGuests)
	Opt(u, "inclusions", in.Inclusions)
	Opt(u, "terms", in.Terms)
	Opt(u, "is_active", in.IsActive)
	if err := apply(ctx, r.db, u, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PackageRepo) Delete(ctx context.Context, id uint64) error {
	return execOne(ctx, r.db, "DELETE FROM packages WHERE id = ?", id)
}

func (r *PackageRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	q := "SELECT COUNT(*) FROM packages"
	if activeOnly {
		q += " WHERE is_active = 1"
	}
	var n int
	err := r.db.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}

// ListRooms joins package_rooms to rooms and prices every room inside p.
// The default room comes first, then by availability priority.
func (r *PackageRepo) ListRooms(ctx context.Context, p *model.Package) ([]*model.PackageRoom, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pr.package_id, pr.room_id, pr.price_adjustment,
			pr.adjustment_type, pr.is_default, pr.availability_priority, pr.max_occupancy_override,
			`+roomColumnsR+`
		FROM package_rooms pr
		JOIN rooms r ON r.id = pr.room_id
		WHERE pr.package_id = ?
		ORDER BY pr.is_default DESC, pr.availability_priority, r.id`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.PackageRoom{}
	for rows.Next() {
		var pr model.PackageRoom
		var room model.Room
		if err := rows.Scan(&pr.PackageID, &pr.RoomID, &pr.PriceAdjustment, &pr.AdjustmentType,
			&pr.IsDefault, &pr.AvailabilityPriority, &pr.MaxOccupancyOverride,
			&room.ID, &room.Name, &room.Type, &room.Price, &room.Capacity, &room.Description,
			&room.Size, &room.Beds, &room.IsActive, &room.Images, &room.Features, &room.Amenities,
			&room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		room.Available = room.IsActive
		pr.Room = &room
		pr.EffectivePrice = model.EffectivePrice(p.BasePrice, p.DiscountPercentage, pr.PriceAdjustment, pr.AdjustmentType)
		out = append(out, &pr)
	}
	return out, rows.Err()
}

// AddRoom links a room to a package, replacing the pricing of an existing
// link.
func (r *PackageRepo) AddRoom(ctx context.Context, pr model.PackageRoom) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO package_rooms
			(package_id, room_id, price_adjustment, adjustment_type, is_default, availability_priority, max_occupancy_override)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			price_adjustment = VALUES(price_adjustment),
			adjustment_type = VALUES(adjustment_type),
			is_default = VALUES(is_default),
			availability_priority = VALUES(availability_priority),
			max_occupancy_override = VALUES(max_occupancy_override)`,
		pr.PackageID, pr.RoomID, pr.PriceAdjustment, pr.AdjustmentType, pr.IsDefault,
		pr.AvailabilityPriority, pr.MaxOccupancyOverride)
	return err
}

func (r *PackageRepo) RemoveRoom(ctx context.Context, packageID, roomID uint64) error {
	return execOne(ctx, r.db, "DELETE FROM package_rooms WHERE package_id = ? AND room_id = ?", packageID, roomID)
}

// ListInclusions returns the inclusion rows joined to a package.
func (r *PackageRepo) ListInclusions(ctx context.Context, packageID uint64) ([]*model.Inclusion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+inclusionColumnsI+`
		FROM package_inclusions pi
		JOIN inclusions i ON i.id = pi.inclusion_id
		WHERE pi.package_id = ?
		ORDER BY i.category, i.name`, packageID)
	if err != nil {
		return nil, err
	}
	return collectInclusions(rows)
}

func (r *PackageRepo) AddInclusion(ctx context.Context, packageID, inclusionID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO package_inclusions (package_id, inclusion_id) VALUES (?, ?)", packageID, inclusionID)
	return err
}

func (r *PackageRepo) RemoveInclusion(ctx context.Context, packageID, inclusionID uint64) error {
	return execOne(ctx, r.db,
		"DELETE FROM package_inclusions WHERE package_id = ? AND inclusion_id = ?", packageID, inclusionID)
}

// ListAmenities returns the amenity rows joined to a package.
func (r *PackageRepo) ListAmenities(ctx context.Context, packageID uint64) ([]*model.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+amenityColumnsA+`
		FROM package_amenities pa
		JOIN amenities a ON a.id = pa.amenity_id
		WHERE pa.package_id = ?
		ORDER BY a.display_order, a.id`, packageID)
	if err != nil {
		return nil, err
	}
	return collectAmenities(rows)
}

func (r *PackageRepo) AddAmenity(ctx context.Context, packageID, amenityID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO package_amenities (package_id, amenity_id) VALUES (?, ?)", packageID, amenityID)
	return err
}

func (r *PackageRepo) RemoveAmenity(ctx context.Context, packageID, amenityID uint64) error {
	return execOne(ctx, r.db,
		"DELETE FROM package_amenities WHERE package_id = ? AND amenity_id = ?", packageID, amenityID)
}

// nullDate maps "" to NULL so a date can be cleared.
func nullDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}
