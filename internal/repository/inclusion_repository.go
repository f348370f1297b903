package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/villa-booking/internal/model"
)

const inclusionColumns = `id, name, category, COALESCE(description, ''), icon, is_featured,
	is_active, created_at, updated_at`

const inclusionColumnsI = `i.id, i.name, i.category, COALESCE(i.description, ''), i.icon, i.is_featured,
	i.is_active, i.created_at, i.updated_at`

type InclusionRepo struct {
	db *sql.DB
}

func NewInclusionRepo(db *sql.DB) *InclusionRepo {
	return &InclusionRepo{db: db}
}

func scanInclusion(s rowScanner) (*model.Inclusion, error) {
	var i model.Inclusion
	if err := s.Scan(&i.ID, &i.Name, &i.Category, &i.Description, &i.Icon, &i.IsFeatured,
		&i.IsActive, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func collectInclusions(rows *sql.Rows) ([]*model.Inclusion, error) {
	defer rows.Close()
	out := []*model.Inclusion{}
	for rows.Next() {
		i, err := scanInclusion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// List returns inclusions filtered by category and featured flag.
func (r *InclusionRepo) List(ctx context.Context, category string, featured bool) ([]*model.Inclusion, error) {
	q := "SELECT " + inclusionColumns + " FROM inclusions WHERE 1=1"
	var args []any
	if category != "" {
		q += " AND category = ?"
		args = append(args, category)
	}
	if featured {
		q += " AND is_featured = 1 AND is_active = 1"
	}
	q += " ORDER BY category, name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectInclusions(rows)
}

func (r *InclusionRepo) GetByID(ctx context.Context, id uint64) (*model.Inclusion, error) {
	i, err := scanInclusion(r.db.QueryRowContext(ctx, "SELECT "+inclusionColumns+" FROM inclusions WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return i, err
}

func (r *InclusionRepo) Create(ctx context.Context, in model.Inclusion) (*model.Inclusion, error) {
	cols := "name, category, description, icon, is_featured, is_active"
	vals := "?, ?, ?, ?, ?, ?"
	args := []any{in.Name, in.Category, in.Description, in.Icon, in.IsFeatured, in.IsActive}
	if in.ID != 0 {
		cols = "id, " + cols
		vals = "?, " + vals
		args = append([]any{in.ID}, args...)
	}
	id, err := insert(ctx, r.db, "INSERT INTO inclusions ("+cols+") VALUES ("+vals+")", args...)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *InclusionRepo) Update(ctx context.Context, id uint64, in model.InclusionInput) (*model.Inclusion, error) {
	u := NewUpdate("inclusions")
	Opt(u, "name", in.Name)
	Opt(u, "category", in.Category)
	Opt(u, "description", in.Description)
	Opt(u, "icon", in.Icon)
	Opt(u, "is_featured", in.IsFeatured)
	Opt(u, "is_active", in.IsActive)
	if err := apply(ctx, r.db, u, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the inclusion; package_inclusions rows are left as is.
func (r *InclusionRepo) Delete(ctx context.Context, id uint64) error {
	return execOne(ctx, r.db, "DELETE FROM inclusions WHERE id = ?", id)
}
