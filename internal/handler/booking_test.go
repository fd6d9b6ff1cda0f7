package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-reservation/internal/booking"
)

// newValidationOnlyHandler builds a handler over an engine with no
// database.  Requests that fail validation never reach storage, so
// these tests prove the 422 path touches nothing.
func newValidationOnlyHandler() *BookingHandler {
    return NewBookingHandler(booking.NewEngine(nil, nil, nil, nil, nil, 0), nil)
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    require.NoError(t, h(e.NewContext(req, rec)))
    return rec
}

func TestCreateBookingRejectsZeroNightStay(t *testing.T) {
    h := newValidationOnlyHandler()
    rec := postJSON(t, h.Create, "/v1/bookings", `{
        "check_in": "2030-05-01",
        "check_out": "2030-05-01",
        "room_type_ids": [1],
        "guest_name": "Ada",
        "guest_email": "ada@example.com",
        "payment_method": "card"
    }`)

    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    var body struct {
        Error  string              `json:"error"`
        Fields map[string][]string `json:"fields"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    assert.Equal(t, "validation_failed", body.Error)
    assert.Contains(t, body.Fields, "check_out")
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
    h := newValidationOnlyHandler()
    rec := postJSON(t, h.Create, "/v1/bookings", `{
        "check_in": "01/05/2030",
        "check_out": "2030-05-03",
        "room_type_ids": [1],
        "guest_name": "Ada",
        "guest_email": "ada@example.com",
        "payment_method": "card"
    }`)

    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    var body struct {
        Fields map[string][]string `json:"fields"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    assert.Contains(t, body.Fields, "check_in")
}

func TestCreateBookingRejectsMalformedJSON(t *testing.T) {
    h := newValidationOnlyHandler()
    rec := postJSON(t, h.Create, "/v1/bookings", `{"check_in": `)
    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateBookingCollectsAllFieldErrors(t *testing.T) {
    h := newValidationOnlyHandler()
    rec := postJSON(t, h.Create, "/v1/bookings", `{
        "check_in": "2030-05-03",
        "check_out": "2030-05-01",
        "room_type_ids": [],
        "guest_name": "",
        "guest_email": "",
        "payment_method": ""
    }`)

    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    var body struct {
        Fields map[string][]string `json:"fields"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    for _, f := range []string{"check_out", "room_type_ids", "guest_name", "guest_email", "payment_method"} {
        assert.Contains(t, body.Fields, f)
    }
}

func TestPathIDRejectsGarbage(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetParamNames("id")
    c.SetParamValues("abc")

    _, err := pathID(c)
    var ve *booking.ValidationError
    require.ErrorAs(t, err, &ve)
    assert.Contains(t, ve.Fields, "id")
}
