package repository

import (
    "context"
    "database/sql"
)

// RoomUnitRepo provides read access to physical room units.  The unit
// pool of a room type is derived from this table: only active units
// count, so taking a unit out of service shrinks availability without
// touching any booking row.
type RoomUnitRepo struct {
    db *sql.DB
}

// NewRoomUnitRepo returns a new RoomUnitRepo bound to the given database.
func NewRoomUnitRepo(db *sql.DB) *RoomUnitRepo { return &RoomUnitRepo{db: db} }

const countActiveQuery = `SELECT COUNT(*) FROM room_units WHERE room_type_id = ? AND is_active = 1`

// CountActiveByType returns the size of a room type's in-service unit
// pool.  Lock-free; used by the advisory read paths.
func (r *RoomUnitRepo) CountActiveByType(ctx context.Context, roomTypeID uint64) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx, countActiveQuery, roomTypeID).Scan(&n)
    return n, err
}

// CountActiveByTypeTx is CountActiveByType inside an existing
// transaction, for the authoritative re-check at reservation time.
func (r *RoomUnitRepo) CountActiveByTypeTx(ctx context.Context, tx *sql.Tx, roomTypeID uint64) (int, error) {
    var n int
    err := tx.QueryRowContext(ctx, countActiveQuery, roomTypeID).Scan(&n)
    return n, err
}
