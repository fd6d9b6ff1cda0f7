package repository

import (
    "context"
    "strings"
)

// StaySearchQuery defines filters & pagination for searching bookable
// room types.  The date interval is not part of the SQL filter:
// candidates are narrowed here, then the availability calculator is
// invoked once per candidate for the requested interval.
type StaySearchQuery struct {
    PropertyID uint64
    PlaceID    uint64
    ProvinceID uint64
    Guests     uint32
    PriceMin   int64 // cents, 0 = no lower bound
    PriceMax   int64 // cents, 0 = no upper bound
    Page       int
    PageSize   int
}

// StayRow is one room type candidate returned by SearchStays, joined
// with its property and place for display.
type StayRow struct {
    RoomTypeID    uint64 `json:"room_type_id"`
    RoomTypeName  string `json:"room_type_name"`
    PropertyID    uint64 `json:"property_id"`
    PropertyName  string `json:"property_name"`
    PlaceID       uint64 `json:"place_id"`
    PlaceName     string `json:"place_name"`
    ProvinceID    uint64 `json:"province_id"`
    PricePerNight int64  `json:"price_per_night_cents"`
    MaxGuests     uint32 `json:"max_guests"`
}

// SearchStays returns enabled room types of active properties
// matching the filters, plus the total match count for pagination.
func (r *RoomTypeRepo) SearchStays(ctx context.Context, q StaySearchQuery) ([]StayRow, int64, error) {
    where := []string{"rt.is_enabled = 1", "p.is_active = 1"}
    args := []interface{}{}

    if q.PropertyID != 0 {
        where = append(where, "p.id = ?")
        args = append(args, q.PropertyID)
    }
    if q.PlaceID != 0 {
        where = append(where, "pl.id = ?")
        args = append(args, q.PlaceID)
    }
    if q.ProvinceID != 0 {
        where = append(where, "pl.province_id = ?")
        args = append(args, q.ProvinceID)
    }
    if q.Guests != 0 {
        where = append(where, "rt.max_guests >= ?")
        args = append(args, q.Guests)
    }
    if q.PriceMin > 0 {
        where = append(where, "rt.price_per_night_cents >= ?")
        args = append(args, q.PriceMin)
    }
    if q.PriceMax > 0 {
        where = append(where, "rt.price_per_night_cents <= ?")
        args = append(args, q.PriceMax)
    }
    cond := strings.Join(where, " AND ")

    var total int64
    countSQL := `SELECT COUNT(*)
        FROM room_types rt
        JOIN properties p ON p.id = rt.property_id
        JOIN places pl    ON pl.id = p.place_id
        WHERE ` + cond
    if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    limit := q.PageSize
    if limit <= 0 {
        limit = 20
    }
    page := q.Page
    if page <= 0 {
        page = 1
    }
    offset := (page - 1) * limit

    dataSQL := `SELECT
            rt.id,
            rt.name,
            p.id  AS property_id,
            p.name AS property_name,
            pl.id  AS place_id,
            pl.name AS place_name,
            pl.province_id,
            rt.price_per_night_cents,
            rt.max_guests
        FROM room_types rt
        JOIN properties p ON p.id = rt.property_id
        JOIN places pl    ON pl.id = p.place_id
        WHERE ` + cond + `
        ORDER BY rt.price_per_night_cents ASC, rt.id ASC
        LIMIT ? OFFSET ?`

    argsData := append(append([]interface{}{}, args...), limit, offset)
    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]StayRow, 0, limit)
    for rows.Next() {
        var d StayRow
        if err := rows.Scan(
            &d.RoomTypeID,
            &d.RoomTypeName,
            &d.PropertyID,
            &d.PropertyName,
            &d.PlaceID,
            &d.PlaceName,
            &d.ProvinceID,
            &d.PricePerNight,
            &d.MaxGuests,
        ); err != nil {
            return nil, 0, err
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}
