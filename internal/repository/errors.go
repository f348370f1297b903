// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios with errors.Is.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the addressed row does not exist.  Handlers
// translate it into a resource specific 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with a unique key, such as
// a duplicate booking reference.  Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnknownColumn is returned by the update builder for a column that is
// not on the table's allow-list.
var ErrUnknownColumn = errors.New("unknown column")

// ErrNothingToUpdate is returned when a partial update carries no fields.
var ErrNothingToUpdate = errors.New("no fields to update")

// ErrUnavailable is returned by Redis backed stores when no Redis client is
// configured.
var ErrUnavailable = errors.New("store unavailable")

// isDuplicate reports whether err is MySQL error 1062 (duplicate entry).
func isDuplicate(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}
