package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-reservation/internal/booking"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// AvailabilityHandler exposes the read side: whole-stay availability,
// per-night calendars and the stay search.  All of it is advisory;
// the reservation transaction re-checks everything under locks.
type AvailabilityHandler struct {
    engine    *booking.Engine
    roomTypes *repository.RoomTypeRepo
}

// NewAvailabilityHandler returns an AvailabilityHandler.
func NewAvailabilityHandler(engine *booking.Engine, roomTypes *repository.RoomTypeRepo) *AvailabilityHandler {
    return &AvailabilityHandler{engine: engine, roomTypes: roomTypes}
}

// queryDate parses a yyyy-mm-dd query parameter.
func queryDate(c echo.Context, name string) (time.Time, error) {
    raw := c.QueryParam(name)
    if raw == "" {
        return time.Time{}, fieldError(name, "is required")
    }
    d, err := booking.ParseDate(raw)
    if err != nil {
        return time.Time{}, fieldError(name, "must be yyyy-mm-dd")
    }
    return d, nil
}

// Available handles GET /v1/room-types/:id/availability?check_in&check_out.
func (h *AvailabilityHandler) Available(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    checkIn, err := queryDate(c, "check_in")
    if err != nil {
        return writeError(c, err)
    }
    checkOut, err := queryDate(c, "check_out")
    if err != nil {
        return writeError(c, err)
    }
    stay := booking.NewStay(checkIn, checkOut)
    av, err := h.engine.Available(c.Request().Context(), id, stay)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "room_type_id":          av.RoomType.ID,
        "room_type_name":        av.RoomType.Name,
        "check_in":              stay.CheckIn.Format(booking.DateLayout),
        "check_out":             stay.CheckOut.Format(booking.DateLayout),
        "nights":                stay.Nights(),
        "total_units":           av.TotalUnits,
        "available_units":       av.AvailableUnits,
        "price_per_night_cents": av.RoomType.PricePerNight,
    })
}

// Calendar handles GET /v1/room-types/:id/calendar?start&end.  When
// the span is omitted it defaults to the next 30 days.
func (h *AvailabilityHandler) Calendar(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    start, end, err := calendarWindow(c)
    if err != nil {
        return writeError(c, err)
    }
    days, err := h.engine.Calendar(c.Request().Context(), id, start, end)
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(days))
    for _, d := range days {
        out = append(out, echo.Map{
            "date":                  d.Date.Format(booking.DateLayout),
            "available_units":       d.AvailableUnits,
            "total_units":           d.TotalUnits,
            "price_per_night_cents": d.PriceCents,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"room_type_id": id, "days": out})
}

// calendarWindow resolves the start/end query params.  start defaults
// to today; end defaults to 30 days after start, so ?start= alone
// asks for the month from that date rather than from today.
func calendarWindow(c echo.Context) (time.Time, time.Time, error) {
    var err error
    start := booking.DateOnly(time.Now())
    if raw := c.QueryParam("start"); raw != "" {
        if start, err = booking.ParseDate(raw); err != nil {
            return time.Time{}, time.Time{}, fieldError("start", "must be yyyy-mm-dd")
        }
    }
    end := start.AddDate(0, 0, 30)
    if raw := c.QueryParam("end"); raw != "" {
        if end, err = booking.ParseDate(raw); err != nil {
            return time.Time{}, time.Time{}, fieldError("end", "must be yyyy-mm-dd")
        }
    }
    return start, end, nil
}

// Search handles GET /v1/bookings/search.  Catalog filters narrow the
// candidate room types in SQL; whole-stay availability is then
// computed per candidate, and sold-out candidates are dropped.
func (h *AvailabilityHandler) Search(c echo.Context) error {
    checkIn, err := queryDate(c, "check_in")
    if err != nil {
        return writeError(c, err)
    }
    checkOut, err := queryDate(c, "check_out")
    if err != nil {
        return writeError(c, err)
    }
    stay := booking.NewStay(checkIn, checkOut)
    if !stay.Valid() {
        return writeError(c, fieldError("check_out", "must be after check_in"))
    }

    q := repository.StaySearchQuery{
        PropertyID: queryUint(c, "property_id"),
        PlaceID:    queryUint(c, "place_id"),
        ProvinceID: queryUint(c, "province_id"),
        Guests:     uint32(queryUint(c, "guests")),
        PriceMin:   int64(queryUint(c, "price_min")),
        PriceMax:   int64(queryUint(c, "price_max")),
        Page:       int(queryUint(c, "page")),
        PageSize:   int(queryUint(c, "page_size")),
    }
    rows, total, err := h.roomTypes.SearchStays(c.Request().Context(), q)
    if err != nil {
        return writeError(c, err)
    }

    results := make([]echo.Map, 0, len(rows))
    for _, row := range rows {
        av, err := h.engine.Available(c.Request().Context(), row.RoomTypeID, stay)
        if err != nil {
            return writeError(c, err)
        }
        if av.AvailableUnits == 0 {
            continue
        }
        results = append(results, echo.Map{
            "room_type_id":          row.RoomTypeID,
            "room_type_name":        row.RoomTypeName,
            "property_id":           row.PropertyID,
            "property_name":         row.PropertyName,
            "place_id":              row.PlaceID,
            "place_name":            row.PlaceName,
            "province_id":           row.ProvinceID,
            "price_per_night_cents": row.PricePerNight,
            "max_guests":            row.MaxGuests,
            "total_units":           av.TotalUnits,
            "available_units":       av.AvailableUnits,
            "total_price_cents":     row.PricePerNight * int64(stay.Nights()),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "check_in":  stay.CheckIn.Format(booking.DateLayout),
        "check_out": stay.CheckOut.Format(booking.DateLayout),
        "nights":    stay.Nights(),
        "results":   results,
        // Candidate count before the availability filter; pages are
        // stable even as availability fluctuates.
        "total_candidates": total,
    })
}

func queryUint(c echo.Context, name string) uint64 {
    n, _ := strconv.ParseUint(c.QueryParam(name), 10, 64)
    return n
}
