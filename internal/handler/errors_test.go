package handler

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-reservation/internal/booking"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

func TestWriteErrorMapping(t *testing.T) {
    cases := []struct {
        name   string
        err    error
        status int
        code   string
    }{
        {"validation", fieldError("check_in", "is required"), http.StatusUnprocessableEntity, "validation_failed"},
        {"disabled", &booking.RoomTypeDisabledError{RoomTypeID: 3}, http.StatusUnprocessableEntity, "room_type_disabled"},
        {"insufficient", &booking.InsufficientInventoryError{RoomTypeID: 3, Requested: 2, Available: 1}, http.StatusUnprocessableEntity, "insufficient_inventory"},
        {"room type missing", repository.ErrRoomTypeNotFound, http.StatusNotFound, "not_found"},
        {"booking missing", repository.ErrBookingNotFound, http.StatusNotFound, "not_found"},
        {"conflict", booking.ErrStatusConflict, http.StatusConflict, "status_conflict"},
        {"contention", booking.ErrContention, http.StatusServiceUnavailable, "inventory_contention"},
        {"reference exhausted", booking.ErrReferenceExhausted, http.StatusInternalServerError, "internal_error"},
        {"unknown", errors.New("driver: bad connection"), http.StatusInternalServerError, "internal_error"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            e := echo.New()
            rec := httptest.NewRecorder()
            c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

            require.NoError(t, writeError(c, tc.err))
            assert.Equal(t, tc.status, rec.Code)
            assert.Contains(t, rec.Body.String(), tc.code)
            if tc.code == "internal_error" {
                // Storage detail must never leak to clients.
                assert.NotContains(t, rec.Body.String(), "driver")
            }
            if errors.Is(tc.err, booking.ErrContention) {
                assert.NotEmpty(t, rec.Header().Get("Retry-After"))
            }
        })
    }
}
