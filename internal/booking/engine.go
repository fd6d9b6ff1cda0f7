package booking

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"
)

// DefaultHoldTTL is how long a pending booking blocks its slots
// against new reservations.  After the window an abandoned checkout
// stops starving inventory; see CountBlockingTx.
const DefaultHoldTTL = 15 * time.Minute

// Engine is the reservation core.  Reads (availability, calendar,
// search support) are lock-free; Reserve and the lifecycle
// transitions each run inside one explicit transaction so that every
// failure rolls the whole operation back.  Engine is safe for
// concurrent use.
type Engine struct {
    db        *sql.DB
    roomTypes *repository.RoomTypeRepo
    units     *repository.RoomUnitRepo
    bookings  *repository.BookingRepo
    payments  *repository.PaymentEventRepo

    holdTTL time.Duration
    now     func() time.Time

    // beforeCommit runs after all writes of a reservation and before
    // Commit.  Nil outside tests; tests use it to fail the unit of
    // work mid-way and assert full rollback.
    beforeCommit func() error
}

// NewEngine wires the engine over the given repositories.  holdTTL
// values <= 0 fall back to DefaultHoldTTL.
func NewEngine(db *sql.DB, roomTypes *repository.RoomTypeRepo, units *repository.RoomUnitRepo,
    bookings *repository.BookingRepo, payments *repository.PaymentEventRepo, holdTTL time.Duration) *Engine {
    if holdTTL <= 0 {
        holdTTL = DefaultHoldTTL
    }
    return &Engine{
        db:        db,
        roomTypes: roomTypes,
        units:     units,
        bookings:  bookings,
        payments:  payments,
        holdTTL:   holdTTL,
        now:       time.Now,
    }
}

// ReserveRequest is the input of Reserve.  RoomTypeIDs may repeat:
// [T1, T1] requests two units of type T1, and its length is the
// number of rooms being booked.
type ReserveRequest struct {
    CheckIn       time.Time
    CheckOut      time.Time
    RoomTypeIDs   []uint64
    GuestName     string
    GuestEmail    string
    GuestPhone    string
    PaymentMethod string
}

func (e *Engine) validateReserve(req *ReserveRequest) (Stay, *ValidationError) {
    ve := newValidationError()
    stay := NewStay(req.CheckIn, req.CheckOut)
    if !stay.Valid() {
        ve.add("check_out", "must be after check_in")
    }
    if stay.CheckIn.Before(DateOnly(e.now())) {
        ve.add("check_in", "must not be in the past")
    }
    if len(req.RoomTypeIDs) == 0 {
        ve.add("room_type_ids", "at least one room type is required")
    }
    for _, id := range req.RoomTypeIDs {
        if id == 0 {
            ve.add("room_type_ids", "ids must be positive")
            break
        }
    }
    if strings.TrimSpace(req.GuestName) == "" {
        ve.add("guest_name", "is required")
    }
    if strings.TrimSpace(req.GuestEmail) == "" {
        ve.add("guest_email", "is required")
    }
    if strings.TrimSpace(req.PaymentMethod) == "" {
        ve.add("payment_method", "is required")
    }
    if !ve.empty() {
        return Stay{}, ve
    }
    return stay, nil
}

// Reserve validates a multi-slot booking request and commits it
// atomically.  The availability re-check runs inside the same
// transaction as the insert, under FOR UPDATE row locks on the room
// types, so two concurrent calls can never both claim the last unit
// of a type for overlapping nights: the second blocks on the lock,
// then sees the first call's rows and fails InsufficientInventory.
//
// Validation and catalog lookups fail before any lock is taken.  Any
// failure after BeginTx rolls back every write of this call.
func (e *Engine) Reserve(ctx context.Context, principal model.Principal, req ReserveRequest) (*model.Booking, error) {
    stay, ve := e.validateReserve(&req)
    if ve != nil {
        return nil, ve
    }

    // Resolve the catalog before locking anything: unknown or
    // disabled types are cheap, lock-free failures.
    typeIDs := repository.SortIDs(req.RoomTypeIDs)
    types, err := e.roomTypes.GetManyByIDs(ctx, typeIDs)
    if err != nil {
        return nil, err
    }
    requested := make(map[uint64]int, len(typeIDs))
    for _, id := range req.RoomTypeIDs {
        requested[id]++
    }
    for _, id := range typeIDs {
        rt, ok := types[id]
        if !ok {
            return nil, repository.ErrRoomTypeNotFound
        }
        if !rt.IsEnabled {
            return nil, &RoomTypeDisabledError{RoomTypeID: id}
        }
    }

    tx, err := e.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Authoritative re-check under row locks, in ascending id order
    // so overlapping reservations cannot deadlock each other.
    for _, id := range typeIDs {
        rt, err := e.roomTypes.LockTx(ctx, tx, id)
        if err != nil {
            return nil, mapContention(err)
        }
        if !rt.IsEnabled {
            return nil, &RoomTypeDisabledError{RoomTypeID: id}
        }
        types[id] = rt // price snapshot from the locked row
        pool, err := e.units.CountActiveByTypeTx(ctx, tx, id)
        if err != nil {
            return nil, err
        }
        blocking, err := e.bookings.CountBlockingTx(ctx, tx, id, stay.CheckIn, stay.CheckOut, e.holdTTL)
        if err != nil {
            return nil, mapContention(err)
        }
        available := pool - blocking
        if available < 0 {
            available = 0
        }
        if available < requested[id] {
            return nil, &InsufficientInventoryError{RoomTypeID: id, Requested: requested[id], Available: available}
        }
    }

    nights := stay.Nights()
    b := &model.Booking{
        GuestName:     strings.TrimSpace(req.GuestName),
        GuestEmail:    strings.TrimSpace(req.GuestEmail),
        GuestPhone:    strings.TrimSpace(req.GuestPhone),
        CheckIn:       stay.CheckIn,
        CheckOut:      stay.CheckOut,
        Nights:        nights,
        Status:        model.BookingPending,
        PaymentStatus: model.PaymentPending,
        PaymentMethod: req.PaymentMethod,
    }
    if !principal.Anonymous() {
        uid := principal.UserID
        b.CustomerID = &uid
    }
    items := make([]model.ReservationItem, 0, len(req.RoomTypeIDs))
    for _, id := range req.RoomTypeIDs {
        unitPrice := types[id].PricePerNight
        total := unitPrice * int64(nights)
        items = append(items, model.ReservationItem{
            RoomTypeID: id,
            UnitPrice:  unitPrice,
            TotalPrice: total,
        })
        b.TotalAmount += total
    }

    // Insert with a bounded retry on merchant reference collisions.
    for attempt := 0; ; attempt++ {
        ref, err := newMerchantRef(e.now())
        if err != nil {
            return nil, err
        }
        b.MerchantRef = ref
        if err = e.bookings.CreateTx(ctx, tx, b); err == nil {
            break
        }
        if !repository.IsDuplicateEntry(err) {
            return nil, mapContention(err)
        }
        if attempt+1 >= maxRefAttempts {
            return nil, ErrReferenceExhausted
        }
    }
    for i := range items {
        items[i].BookingID = b.ID
    }
    if err := e.bookings.CreateItemsBulkTx(ctx, tx, items); err != nil {
        return nil, mapContention(err)
    }

    if e.beforeCommit != nil {
        if err := e.beforeCommit(); err != nil {
            return nil, err
        }
    }
    if err := tx.Commit(); err != nil {
        return nil, mapContention(err)
    }
    committed = true
    b.Items = items
    return b, nil
}

// mapContention translates driver-level lock waits and deadlocks into
// the retryable contention error; everything else passes through.
func mapContention(err error) error {
    if repository.IsLockContention(err) {
        return ErrContention
    }
    return err
}

// GetBooking loads a booking aggregate scoped to the acting
// principal.  A booking owned by someone else reports not found
// rather than forbidden, so ids cannot be probed for existence.
func (e *Engine) GetBooking(ctx context.Context, principal model.Principal, id uint64) (*model.Booking, error) {
    b, err := e.bookings.GetByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if !e.visibleTo(principal, b) {
        return nil, repository.ErrBookingNotFound
    }
    return b, nil
}

// ListBookings returns the principal's bookings, newest first.
func (e *Engine) ListBookings(ctx context.Context, principal model.Principal) ([]model.Booking, error) {
    if principal.Anonymous() {
        return []model.Booking{}, nil
    }
    return e.bookings.ListByCustomer(ctx, principal.UserID)
}

func (e *Engine) visibleTo(principal model.Principal, b *model.Booking) bool {
    if principal.Operator() {
        return true
    }
    return b.CustomerID != nil && !principal.Anonymous() && *b.CustomerID == principal.UserID
}
