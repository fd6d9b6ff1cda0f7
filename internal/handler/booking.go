package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-reservation/internal/booking"
    "github.com/iliyamo/hotel-room-reservation/internal/middleware"
    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/queue"
    queue_publisher "github.com/iliyamo/hotel-room-reservation/internal/service"
)

// BookingHandler exposes the reservation and lifecycle endpoints.
// The engine owns all business rules; handlers translate between
// JSON and engine types and publish lifecycle events after commit.
type BookingHandler struct {
    engine    *booking.Engine
    publisher *queue_publisher.Publisher
}

// NewBookingHandler returns a BookingHandler.  publisher may be nil,
// in which case lifecycle events are not emitted.
func NewBookingHandler(engine *booking.Engine, publisher *queue_publisher.Publisher) *BookingHandler {
    return &BookingHandler{engine: engine, publisher: publisher}
}

// publish emits a lifecycle event off the request path.  The booking
// is already committed, so a broker failure must not fail the call.
func (h *BookingHandler) publish(eventType string, b *model.Booking) {
    if h.publisher == nil || b == nil {
        return
    }
    ev := queue.NewBookingEvent(eventType, b)
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = h.publisher.PublishBookingEvent(ctx, ev)
    }()
}

// createBookingRequest is the JSON body of POST /v1/bookings.
type createBookingRequest struct {
    CheckIn       string   `json:"check_in"`
    CheckOut      string   `json:"check_out"`
    RoomTypeIDs   []uint64 `json:"room_type_ids"`
    GuestName     string   `json:"guest_name"`
    GuestEmail    string   `json:"guest_email"`
    GuestPhone    string   `json:"guest_phone"`
    PaymentMethod string   `json:"payment_method"`
}

// Create handles POST /v1/bookings.  Guests may book without a token;
// an authenticated customer becomes the booking's owner.
func (h *BookingHandler) Create(c echo.Context) error {
    var req createBookingRequest
    if err := c.Bind(&req); err != nil {
        return writeError(c, fieldError("body", "malformed JSON"))
    }
    checkIn, err := booking.ParseDate(req.CheckIn)
    if err != nil {
        return writeError(c, fieldError("check_in", "must be yyyy-mm-dd"))
    }
    checkOut, err := booking.ParseDate(req.CheckOut)
    if err != nil {
        return writeError(c, fieldError("check_out", "must be yyyy-mm-dd"))
    }

    b, err := h.engine.Reserve(c.Request().Context(), middleware.Principal(c), booking.ReserveRequest{
        CheckIn:       checkIn,
        CheckOut:      checkOut,
        RoomTypeIDs:   req.RoomTypeIDs,
        GuestName:     req.GuestName,
        GuestEmail:    req.GuestEmail,
        GuestPhone:    req.GuestPhone,
        PaymentMethod: req.PaymentMethod,
    })
    if err != nil {
        return writeError(c, err)
    }
    h.publish(queue.EventBookingCreated, b)
    return c.JSON(http.StatusCreated, bookingJSON(b))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    b, err := h.engine.GetBooking(c.Request().Context(), middleware.Principal(c), id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, bookingJSON(b))
}

// List handles GET /v1/my-bookings.
func (h *BookingHandler) List(c echo.Context) error {
    bookings, err := h.engine.ListBookings(c.Request().Context(), middleware.Principal(c))
    if err != nil {
        return writeError(c, err)
    }
    out := make([]echo.Map, 0, len(bookings))
    for i := range bookings {
        out = append(out, bookingJSON(&bookings[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": out, "total": len(out)})
}

// changeStatusRequest is the JSON body of PATCH /v1/bookings/:id/status.
type changeStatusRequest struct {
    Status string `json:"status"`
}

// ChangeStatus handles PATCH /v1/bookings/:id/status.
func (h *BookingHandler) ChangeStatus(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    var req changeStatusRequest
    if err := c.Bind(&req); err != nil {
        return writeError(c, fieldError("body", "malformed JSON"))
    }
    b, err := h.engine.ChangeStatus(c.Request().Context(), middleware.Principal(c), id, model.BookingStatus(req.Status))
    if err != nil {
        return writeError(c, err)
    }
    switch b.Status {
    case model.BookingPaid:
        h.publish(queue.EventBookingPaid, b)
    case model.BookingCancelled:
        h.publish(queue.EventBookingCancelled, b)
    case model.BookingCompleted:
        h.publish(queue.EventBookingCompleted, b)
    }
    return c.JSON(http.StatusOK, bookingJSON(b))
}

// paymentCallbackRequest is the JSON body the payment provider posts
// to /v1/bookings/:id/payment-callback.
type paymentCallbackRequest struct {
    Status         string `json:"status"`
    TransactionRef string `json:"transaction_ref"`
    PaidAt         string `json:"paid_at"` // RFC3339, optional
}

// PaymentCallback handles POST /v1/bookings/:id/payment-callback.
// Idempotent per transaction_ref: a redelivered notification answers
// 200 with applied=false and changes nothing.
func (h *BookingHandler) PaymentCallback(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    var req paymentCallbackRequest
    if err := c.Bind(&req); err != nil {
        return writeError(c, fieldError("body", "malformed JSON"))
    }
    cb := booking.PaymentCallback{
        Status:         model.PaymentStatus(req.Status),
        TransactionRef: req.TransactionRef,
    }
    if req.PaidAt != "" {
        t, err := time.Parse(time.RFC3339, req.PaidAt)
        if err != nil {
            return writeError(c, fieldError("paid_at", "must be RFC3339"))
        }
        cb.PaidAt = &t
    }
    b, applied, err := h.engine.ApplyPaymentCallback(c.Request().Context(), id, cb)
    if err != nil {
        return writeError(c, err)
    }
    if applied && b.Status == model.BookingPaid {
        h.publish(queue.EventBookingPaid, b)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "applied":        applied,
        "status":         b.Status,
        "payment_status": b.PaymentStatus,
    })
}

// Delete handles DELETE /v1/bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return writeError(c, err)
    }
    if err := h.engine.DeleteBooking(c.Request().Context(), middleware.Principal(c), id); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"deleted": true, "id": id})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, fieldError("id", "must be a positive integer")
    }
    return id, nil
}

// bookingJSON renders a booking aggregate in the wire shape shared by
// every endpoint that returns a booking.
func bookingJSON(b *model.Booking) echo.Map {
    items := make([]echo.Map, 0, len(b.Items))
    for _, it := range b.Items {
        items = append(items, echo.Map{
            "id":                it.ID,
            "room_type_id":      it.RoomTypeID,
            "assigned_unit_id":  it.AssignedUnitID,
            "unit_price_cents":  it.UnitPrice,
            "total_price_cents": it.TotalPrice,
        })
    }
    return echo.Map{
        "id":                 b.ID,
        "customer_id":        b.CustomerID,
        "guest_name":         b.GuestName,
        "guest_email":        b.GuestEmail,
        "guest_phone":        b.GuestPhone,
        "check_in":           b.CheckIn.Format(booking.DateLayout),
        "check_out":          b.CheckOut.Format(booking.DateLayout),
        "nights":             b.Nights,
        "status":             b.Status,
        "payment_status":     b.PaymentStatus,
        "merchant_ref":       b.MerchantRef,
        "payment_method":     b.PaymentMethod,
        "total_amount_cents": b.TotalAmount,
        "items":              items,
        "created_at":         b.CreatedAt,
        "updated_at":         b.UpdatedAt,
    }
}
