package repository

import (
	"context"
	"database/sql"
)

// insert runs an INSERT and returns the generated id.  Duplicate keys are
// reported as ErrConflict.
func insert(ctx context.Context, db *sql.DB, q string, args ...any) (uint64, error) {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// execOne runs a statement that must touch exactly one row.  It returns
// ErrNotFound when nothing matched.
func execOne(ctx context.Context, db *sql.DB, q string, args ...any) error {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// apply executes a partial update built with Update.
func apply(ctx context.Context, db *sql.DB, u *Update, id uint64) error {
	q, args, err := u.Build(id)
	if err != nil {
		return err
	}
	return execOne(ctx, db, q, args...)
}
