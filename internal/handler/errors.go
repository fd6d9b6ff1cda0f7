package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-reservation/internal/booking"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// writeError maps the booking error taxonomy onto HTTP responses.
// Every body carries a stable "error" code clients can switch on;
// internal failures are reported generically so no storage-layer
// detail leaks to the caller.
func writeError(c echo.Context, err error) error {
    var ve *booking.ValidationError
    if errors.As(err, &ve) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":   "validation_failed",
            "message": "request validation failed",
            "fields":  ve.Fields,
        })
    }
    var de *booking.RoomTypeDisabledError
    if errors.As(err, &de) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":        "room_type_disabled",
            "message":      de.Error(),
            "room_type_id": de.RoomTypeID,
        })
    }
    var ie *booking.InsufficientInventoryError
    if errors.As(err, &ie) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":        "insufficient_inventory",
            "message":      ie.Error(),
            "room_type_id": ie.RoomTypeID,
            "requested":    ie.Requested,
            "available":    ie.Available,
        })
    }
    switch {
    case errors.Is(err, repository.ErrRoomTypeNotFound),
        errors.Is(err, repository.ErrBookingNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{
            "error":   "not_found",
            "message": "resource not found",
        })
    case errors.Is(err, booking.ErrStatusConflict):
        return c.JSON(http.StatusConflict, echo.Map{
            "error":   "status_conflict",
            "message": "booking state does not allow this transition",
        })
    case errors.Is(err, booking.ErrContention):
        // The reservation lost a lock race; nothing was written, so
        // the client can replay the identical request.
        c.Response().Header().Set("Retry-After", "1")
        return c.JSON(http.StatusServiceUnavailable, echo.Map{
            "error":   "inventory_contention",
            "message": "inventory is contended, retry the request",
        })
    }
    c.Logger().Errorf("internal error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{
        "error":   "internal_error",
        "message": "internal failure",
    })
}

// fieldError builds a single-field validation error, for request
// shape problems detected in the handler before the engine runs.
func fieldError(field, problem string) *booking.ValidationError {
    ve := &booking.ValidationError{Fields: map[string][]string{field: {problem}}}
    return ve
}
