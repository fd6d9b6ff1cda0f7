package booking

import (
    "context"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
)

// maxCalendarDays bounds a single calendar request to roughly one
// quarter so an unbounded span cannot run a full table scan per day.
const maxCalendarDays = 93

// Availability is the lock-free answer for one room type and stay.
type Availability struct {
    RoomType       *model.RoomType
    TotalUnits     int
    AvailableUnits int
}

// Available computes how many units of a room type are free for the
// whole stay: active units minus bookings in an occupying status
// whose interval overlaps the stay, floored at zero.  The answer is a
// point-in-time snapshot; only Reserve's in-transaction re-check is
// authoritative.
func (e *Engine) Available(ctx context.Context, roomTypeID uint64, stay Stay) (*Availability, error) {
    ve := newValidationError()
    if roomTypeID == 0 {
        ve.add("room_type_id", "must be positive")
    }
    if !stay.Valid() {
        ve.add("check_out", "must be after check_in")
    }
    if !ve.empty() {
        return nil, ve
    }
    rt, err := e.roomTypes.GetByID(ctx, roomTypeID)
    if err != nil {
        return nil, err
    }
    pool, err := e.units.CountActiveByType(ctx, roomTypeID)
    if err != nil {
        return nil, err
    }
    occupied, err := e.bookings.CountOccupying(ctx, roomTypeID, stay.CheckIn, stay.CheckOut)
    if err != nil {
        return nil, err
    }
    avail := pool - occupied
    if avail < 0 {
        avail = 0
    }
    return &Availability{RoomType: rt, TotalUnits: pool, AvailableUnits: avail}, nil
}

// CalendarDay is the availability of one room type for one night.
type CalendarDay struct {
    Date           time.Time `json:"-"`
    AvailableUnits int       `json:"available_units"`
    TotalUnits     int       `json:"total_units"`
    PriceCents     int64     `json:"price_per_night_cents"`
}

// Calendar returns per-night availability for [start, end), one entry
// per night.  A unit free on a given night may still be unavailable
// for a longer stay; use Available for whole-stay answers.
func (e *Engine) Calendar(ctx context.Context, roomTypeID uint64, start, end time.Time) ([]CalendarDay, error) {
    start, end = DateOnly(start), DateOnly(end)
    ve := newValidationError()
    if roomTypeID == 0 {
        ve.add("room_type_id", "must be positive")
    }
    if !end.After(start) {
        ve.add("end", "must be after start")
    } else if int(end.Sub(start).Hours()/24) > maxCalendarDays {
        ve.add("end", "span exceeds 93 days")
    }
    if !ve.empty() {
        return nil, ve
    }
    rt, err := e.roomTypes.GetByID(ctx, roomTypeID)
    if err != nil {
        return nil, err
    }
    pool, err := e.units.CountActiveByType(ctx, roomTypeID)
    if err != nil {
        return nil, err
    }
    days := make([]CalendarDay, 0, int(end.Sub(start).Hours()/24))
    for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
        occupied, err := e.bookings.CountOccupying(ctx, roomTypeID, day, day.AddDate(0, 0, 1))
        if err != nil {
            return nil, err
        }
        avail := pool - occupied
        if avail < 0 {
            avail = 0
        }
        days = append(days, CalendarDay{
            Date:           day,
            AvailableUnits: avail,
            TotalUnits:     pool,
            PriceCents:     rt.PricePerNight,
        })
    }
    return days, nil
}
