// Package repository provides data access to the relational store.
// This file defines sentinel errors shared across repositories and
// helpers for classifying MySQL driver errors.  Sentinels let higher
// layers distinguish failure scenarios with errors.Is instead of
// string matching; the driver helpers keep error-number knowledge out
// of the booking engine.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrRoomTypeNotFound is returned when a room type id does not exist
// in the catalog.
var ErrRoomTypeNotFound = errors.New("room type not found")

// ErrBookingNotFound is returned when a booking does not exist or is
// not visible to the caller.  Ownership misses map to this error on
// purpose so that endpoints do not leak the existence of other
// customers' bookings.
var ErrBookingNotFound = errors.New("booking not found")

// MySQL server error numbers this core reacts to.
const (
    mysqlErrDuplicateEntry  = 1062
    mysqlErrLockWaitTimeout = 1205
    mysqlErrDeadlock        = 1213
)

// IsDuplicateEntry reports whether err is a unique-key violation.
func IsDuplicateEntry(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

// IsLockContention reports whether err is a lock wait timeout or a
// deadlock rollback.  Both mean another reservation held the room
// type's occupancy lock for too long and the caller may safely retry.
func IsLockContention(err error) bool {
    var me *mysql.MySQLError
    if !errors.As(err, &me) {
        return false
    }
    return me.Number == mysqlErrLockWaitTimeout || me.Number == mysqlErrDeadlock
}
