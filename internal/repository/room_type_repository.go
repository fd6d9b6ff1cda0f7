package repository

import (
    "context"
    "database/sql"
    "errors"
    "sort"
    "strings"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RoomTypeRepo provides read access to the room type catalog.  Room
// types are reference data owned by the external catalog service, so
// this repository exposes no write operations beyond the FOR UPDATE
// lock used by the reservation transaction.
type RoomTypeRepo struct {
    db *sql.DB
}

// NewRoomTypeRepo returns a new RoomTypeRepo bound to the given database.
func NewRoomTypeRepo(db *sql.DB) *RoomTypeRepo { return &RoomTypeRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span multiple repositories.
func (r *RoomTypeRepo) DB() *sql.DB { return r.db }

const roomTypeColumns = `id, property_id, name, description, price_per_night_cents, max_guests, is_enabled, created_at, updated_at`

func scanRoomType(row *sql.Row) (*model.RoomType, error) {
    var rt model.RoomType
    var desc sql.NullString
    err := row.Scan(&rt.ID, &rt.PropertyID, &rt.Name, &desc, &rt.PricePerNight,
        &rt.MaxGuests, &rt.IsEnabled, &rt.CreatedAt, &rt.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomTypeNotFound
        }
        return nil, err
    }
    if desc.Valid {
        d := desc.String
        rt.Description = &d
    }
    return &rt, nil
}

// GetByID returns a single room type or ErrRoomTypeNotFound.
func (r *RoomTypeRepo) GetByID(ctx context.Context, id uint64) (*model.RoomType, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+roomTypeColumns+` FROM room_types WHERE id = ?`, id)
    return scanRoomType(row)
}

// GetManyByIDs loads the given room types in one query and returns
// them keyed by id.  Missing ids are simply absent from the map; the
// caller decides whether that is an error.
func (r *RoomTypeRepo) GetManyByIDs(ctx context.Context, ids []uint64) (map[uint64]*model.RoomType, error) {
    out := make(map[uint64]*model.RoomType, len(ids))
    if len(ids) == 0 {
        return out, nil
    }
    placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
    args := make([]interface{}, 0, len(ids))
    for _, id := range ids {
        args = append(args, id)
    }
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+roomTypeColumns+` FROM room_types WHERE id IN (`+placeholders+`)`, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var rt model.RoomType
        var desc sql.NullString
        if err := rows.Scan(&rt.ID, &rt.PropertyID, &rt.Name, &desc, &rt.PricePerNight,
            &rt.MaxGuests, &rt.IsEnabled, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
            return nil, err
        }
        if desc.Valid {
            d := desc.String
            rt.Description = &d
        }
        out[rt.ID] = &rt
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// LockTx loads a room type with SELECT ... FOR UPDATE inside the
// provided transaction.  The row lock serializes concurrent
// reservations of the same type: a second transaction blocks here
// until the first commits, then observes the freshly inserted
// occupancy.  When several types are locked by one reservation, the
// caller must lock them in ascending id order (use SortIDs) so that
// two overlapping reservations cannot deadlock.
func (r *RoomTypeRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RoomType, error) {
    row := tx.QueryRowContext(ctx,
        `SELECT `+roomTypeColumns+` FROM room_types WHERE id = ? FOR UPDATE`, id)
    return scanRoomType(row)
}

// SortIDs returns a deduplicated copy of ids in ascending order, the
// canonical lock acquisition order for LockTx.
func SortIDs(ids []uint64) []uint64 {
    seen := make(map[uint64]struct{}, len(ids))
    out := make([]uint64, 0, len(ids))
    for _, id := range ids {
        if _, ok := seen[id]; !ok {
            seen[id] = struct{}{}
            out = append(out, id)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
    return out
}
