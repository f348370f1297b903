package repository

import (
	"fmt"
	"strings"
)

// updatable lists, per table, the columns a partial update may touch.
// Anything else is refused before a statement is built.
var updatable = map[string]map[string]bool{
	"rooms": set("name", "type", "price", "capacity", "description", "size",
		"beds", "is_active", "images", "features", "amenities"),
	"packages": set("name", "description", "package_type", "marketing_category",
		"base_price", "discount_percentage", "min_nights", "max_nights",
		"valid_from", "valid_until", "max_guests", "inclusions", "terms", "is_active"),
	"bookings": set("room_id", "package_id", "first_name", "last_name", "email",
		"phone", "check_in", "check_out", "guests", "adults", "children",
		"total_price", "currency", "status", "payment_status",
		"special_requests", "source"),
	"amenities": set("name", "category", "description", "icon", "is_featured",
		"is_active", "display_order"),
	"inclusions": set("name", "category", "description", "icon", "is_featured",
		"is_active"),
	"villa_info": set("name", "location", "description", "images",
		"amenities_summary", "phone", "email", "website", "address",
		"check_in_time", "check_out_time", "max_guests", "total_rooms",
		"total_bathrooms", "policies"),
}

func set(cols ...string) map[string]bool {
	m := make(map[string]bool, len(cols))
	for _, c := range cols {
		m[c] = true
	}
	return m
}

// Update accumulates column assignments for one row of one table.  The
// first invalid column sticks as the builder's error.
type Update struct {
	table string
	cols  []string
	args  []any
	err   error
}

// NewUpdate starts an update of table.
func NewUpdate(table string) *Update {
	u := &Update{table: table}
	if _, ok := updatable[table]; !ok {
		u.err = fmt.Errorf("%w: table %s", ErrUnknownColumn, table)
	}
	return u
}

// Set assigns v to col.
func (u *Update) Set(col string, v any) *Update {
	if u.err != nil {
		return u
	}
	if !updatable[u.table][col] {
		u.err = fmt.Errorf("%w: %s.%s", ErrUnknownColumn, u.table, col)
		return u
	}
	for i, c := range u.cols {
		if c == col {
			u.args[i] = v
			return u
		}
	}
	u.cols = append(u.cols, col)
	u.args = append(u.args, v)
	return u
}

// Opt assigns *v to col when v is non-nil.
func Opt[T any](u *Update, col string, v *T) *Update {
	if v == nil {
		return u
	}
	return u.Set(col, *v)
}

// Len is the number of assignments collected.
func (u *Update) Len() int { return len(u.cols) }

// Err returns the builder error, if any.
func (u *Update) Err() error { return u.err }

// Build renders `UPDATE table SET a = ?, b = ? WHERE id = ?`.
func (u *Update) Build(id uint64) (string, []any, error) {
	if u.err != nil {
		return "", nil, u.err
	}
	if len(u.cols) == 0 {
		return "", nil, ErrNothingToUpdate
	}
	parts := make([]string, len(u.cols))
	for i, c := range u.cols {
		parts[i] = c + " = ?"
	}
	q := "UPDATE " + u.table + " SET " + strings.Join(parts, ", ") + " WHERE id = ?"
	args := append(append([]any{}, u.args...), id)
	return q, args, nil
}
