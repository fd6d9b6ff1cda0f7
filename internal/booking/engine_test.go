package booking

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "os"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-reservation/internal/model"
    "github.com/iliyamo/hotel-room-reservation/internal/repository"

    _ "github.com/go-sql-driver/mysql"
)

// setupTestDB connects to the MySQL instance named by the DB_* env
// vars and creates the reservation schema.  Tests that need a
// database are skipped when none is reachable.
func setupTestDB(t testing.TB) *sql.DB {
    t.Helper()

    env := func(key, def string) string {
        if v := os.Getenv(key); v != "" {
            return v
        }
        return def
    }
    user := env("DB_USER", "root")
    pass := os.Getenv("DB_PASS")
    host := env("DB_HOST", "127.0.0.1")
    port := env("DB_PORT", "3306")
    name := env("DB_NAME", "hotel_test")

    auth := user
    if pass != "" {
        auth = fmt.Sprintf("%s:%s", user, pass)
    }
    dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=true",
        auth, host, port, name)
    db, err := sql.Open("mysql", dsn)
    require.NoError(t, err)

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        t.Skipf("skipping: could not connect to mysql: %v", err)
    }

    const schema = `
    CREATE TABLE IF NOT EXISTS room_types (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        property_id BIGINT UNSIGNED NOT NULL,
        name VARCHAR(190) NOT NULL,
        description TEXT NULL,
        price_per_night_cents BIGINT NOT NULL,
        max_guests INT UNSIGNED NOT NULL DEFAULT 2,
        is_enabled TINYINT(1) NOT NULL DEFAULT 1,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    );
    CREATE TABLE IF NOT EXISTS room_units (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        room_type_id BIGINT UNSIGNED NOT NULL,
        unit_number VARCHAR(32) NOT NULL,
        is_active TINYINT(1) NOT NULL DEFAULT 1,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        KEY idx_room_units_type (room_type_id, is_active)
    );
    CREATE TABLE IF NOT EXISTS bookings (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        customer_id BIGINT UNSIGNED NULL,
        guest_name VARCHAR(190) NOT NULL,
        guest_email VARCHAR(190) NOT NULL,
        guest_phone VARCHAR(32) NOT NULL DEFAULT '',
        check_in DATE NOT NULL,
        check_out DATE NOT NULL,
        nights INT NOT NULL,
        status VARCHAR(16) NOT NULL,
        payment_status VARCHAR(16) NOT NULL,
        merchant_ref VARCHAR(64) NOT NULL,
        payment_method VARCHAR(32) NOT NULL,
        total_amount_cents BIGINT NOT NULL,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        UNIQUE KEY uq_bookings_merchant_ref (merchant_ref),
        KEY idx_bookings_stay (check_in, check_out)
    );
    CREATE TABLE IF NOT EXISTS reservation_items (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        booking_id BIGINT UNSIGNED NOT NULL,
        room_type_id BIGINT UNSIGNED NOT NULL,
        assigned_unit_id BIGINT UNSIGNED NULL,
        unit_price_cents BIGINT NOT NULL,
        total_price_cents BIGINT NOT NULL,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        KEY idx_items_type (room_type_id),
        CONSTRAINT fk_items_booking FOREIGN KEY (booking_id)
            REFERENCES bookings (id) ON DELETE CASCADE
    );
    CREATE TABLE IF NOT EXISTS payment_events (
        id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
        booking_id BIGINT UNSIGNED NOT NULL,
        transaction_ref VARCHAR(64) NOT NULL,
        status VARCHAR(16) NOT NULL,
        paid_at DATETIME NULL,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        UNIQUE KEY uq_payment_events_ref (transaction_ref)
    );`
    _, err = db.Exec(schema)
    require.NoError(t, err)

    t.Cleanup(func() { db.Close() })
    return db
}

func newTestEngine(t testing.TB, db *sql.DB) *Engine {
    t.Helper()
    return NewEngine(db,
        repository.NewRoomTypeRepo(db),
        repository.NewRoomUnitRepo(db),
        repository.NewBookingRepo(db),
        repository.NewPaymentEventRepo(db),
        DefaultHoldTTL)
}

// seedRoomType inserts a room type with the given number of active
// units and returns its id.
func seedRoomType(t testing.TB, db *sql.DB, units int, priceCents int64, enabled bool) uint64 {
    t.Helper()
    res, err := db.Exec(
        `INSERT INTO room_types (property_id, name, price_per_night_cents, max_guests, is_enabled) VALUES (1, ?, ?, 2, ?)`,
        fmt.Sprintf("test-type-%d", time.Now().UnixNano()), priceCents, enabled)
    require.NoError(t, err)
    id, err := res.LastInsertId()
    require.NoError(t, err)
    for i := 0; i < units; i++ {
        _, err = db.Exec(`INSERT INTO room_units (room_type_id, unit_number) VALUES (?, ?)`, id, fmt.Sprintf("%d-%d", id, i+1))
        require.NoError(t, err)
    }
    return uint64(id)
}

func futureStay(t testing.TB, daysAhead, nights int) (time.Time, time.Time) {
    t.Helper()
    in := DateOnly(time.Now()).AddDate(0, 0, daysAhead)
    return in, in.AddDate(0, 0, nights)
}

func reserveReq(typeIDs []uint64, in, out time.Time) ReserveRequest {
    return ReserveRequest{
        CheckIn:       in,
        CheckOut:      out,
        RoomTypeIDs:   typeIDs,
        GuestName:     "Ada Lovelace",
        GuestEmail:    "ada@example.com",
        GuestPhone:    "+49123456789",
        PaymentMethod: "card",
    }
}

func TestReserveValidation(t *testing.T) {
    // Validation runs before any repository call, so a bare engine
    // with a clock is enough.
    e := &Engine{now: time.Now}
    in, _ := futureStay(t, 10, 1)

    cases := []struct {
        name  string
        req   ReserveRequest
        field string
    }{
        {"zero nights", reserveReq([]uint64{1}, in, in), "check_out"},
        {"inverted interval", reserveReq([]uint64{1}, in, in.AddDate(0, 0, -2)), "check_out"},
        {"past check-in", reserveReq([]uint64{1}, in.AddDate(0, 0, -30), in), "check_in"},
        {"no room types", reserveReq(nil, in, in.AddDate(0, 0, 2)), "room_type_ids"},
        {"zero id", reserveReq([]uint64{0}, in, in.AddDate(0, 0, 2)), "room_type_ids"},
        {
            "missing guest name",
            func() ReserveRequest {
                r := reserveReq([]uint64{1}, in, in.AddDate(0, 0, 2))
                r.GuestName = "  "
                return r
            }(),
            "guest_name",
        },
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := e.Reserve(context.Background(), model.Principal{}, tc.req)
            var ve *ValidationError
            require.ErrorAs(t, err, &ve)
            assert.Contains(t, ve.Fields, tc.field)
        })
    }
}

func TestReserveAndAvailability(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()

    typeID := seedRoomType(t, db, 2, 12000, true)
    in, out := futureStay(t, 30, 3)

    b, err := e.Reserve(ctx, model.Principal{UserID: 7, Role: model.RoleCustomer}, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)
    assert.Equal(t, model.BookingPending, b.Status)
    assert.Equal(t, model.PaymentPending, b.PaymentStatus)
    assert.Equal(t, 3, b.Nights)
    assert.Equal(t, int64(36000), b.TotalAmount)
    require.Len(t, b.Items, 1)
    assert.Equal(t, int64(12000), b.Items[0].UnitPrice)
    assert.NotEmpty(t, b.MerchantRef)

    // Pending does not occupy: advisory availability still shows 2.
    av, err := e.Available(ctx, typeID, NewStay(in, out))
    require.NoError(t, err)
    assert.Equal(t, 2, av.AvailableUnits)
    assert.Equal(t, 2, av.TotalUnits)

    // Paid occupies.
    _, err = e.ChangeStatus(ctx, model.Principal{UserID: 7, Role: model.RoleCustomer}, b.ID, model.BookingPaid)
    require.NoError(t, err)
    av, err = e.Available(ctx, typeID, NewStay(in, out))
    require.NoError(t, err)
    assert.Equal(t, 1, av.AvailableUnits)

    // Partial overlap still collides; a back-to-back stay does not.
    av, err = e.Available(ctx, typeID, NewStay(in.AddDate(0, 0, 2), out.AddDate(0, 0, 2)))
    require.NoError(t, err)
    assert.Equal(t, 1, av.AvailableUnits)
    av, err = e.Available(ctx, typeID, NewStay(out, out.AddDate(0, 0, 2)))
    require.NoError(t, err)
    assert.Equal(t, 2, av.AvailableUnits)
}

func TestReserveMultiSlotAtomicity(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()

    okType := seedRoomType(t, db, 3, 10000, true)
    fullType := seedRoomType(t, db, 0, 8000, true)
    in, out := futureStay(t, 30, 2)

    _, err := e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{okType, fullType}, in, out))
    var ie *InsufficientInventoryError
    require.ErrorAs(t, err, &ie)
    assert.Equal(t, fullType, ie.RoomTypeID)
    assert.Equal(t, 1, ie.Requested)
    assert.Equal(t, 0, ie.Available)

    // Nothing of the failed request may survive, not even the slot
    // that had inventory.
    var n int
    require.NoError(t, db.QueryRow(
        `SELECT COUNT(*) FROM reservation_items WHERE room_type_id IN (?, ?)`, okType, fullType).Scan(&n))
    assert.Zero(t, n)
}

func TestReserveTwoUnitsSameType(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()

    typeID := seedRoomType(t, db, 2, 5000, true)
    in, out := futureStay(t, 30, 2)

    b, err := e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{typeID, typeID}, in, out))
    require.NoError(t, err)
    require.Len(t, b.Items, 2)
    assert.Equal(t, int64(20000), b.TotalAmount)

    // Both units are now held; a third concurrent-style request fails.
    _, err = e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{typeID}, in, out))
    require.ErrorAs(t, err, new(*InsufficientInventoryError))
}

func TestReserveUnknownAndDisabledTypes(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    in, out := futureStay(t, 30, 2)

    _, err := e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{99999999}, in, out))
    assert.ErrorIs(t, err, repository.ErrRoomTypeNotFound)

    disabled := seedRoomType(t, db, 2, 5000, false)
    _, err = e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{disabled}, in, out))
    var de *RoomTypeDisabledError
    require.ErrorAs(t, err, &de)
    assert.Equal(t, disabled, de.RoomTypeID)
}

func TestPendingHoldExpires(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()

    typeID := seedRoomType(t, db, 1, 5000, true)
    in, out := futureStay(t, 30, 2)

    first, err := e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)

    // Within the hold window the pending booking blocks the last unit.
    _, err = e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{typeID}, in, out))
    require.ErrorAs(t, err, new(*InsufficientInventoryError))

    // Age the pending booking past the hold window; it stops blocking.
    _, err = db.Exec(`UPDATE bookings SET created_at = created_at - INTERVAL 1 HOUR WHERE id = ?`, first.ID)
    require.NoError(t, err)
    _, err = e.Reserve(ctx, model.Principal{}, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)
}

func TestConcurrentReserveLastUnit(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)

    typeID := seedRoomType(t, db, 1, 5000, true)
    in, out := futureStay(t, 30, 2)

    var wg sync.WaitGroup
    errs := make([]error, 2)
    for i := 0; i < 2; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = e.Reserve(context.Background(), model.Principal{}, reserveReq([]uint64{typeID}, in, out))
        }(i)
    }
    wg.Wait()

    var won, lost int
    for _, err := range errs {
        switch {
        case err == nil:
            won++
        case errors.As(err, new(*InsufficientInventoryError)) || errors.Is(err, ErrContention):
            lost++
        default:
            t.Fatalf("unexpected error: %v", err)
        }
    }
    assert.Equal(t, 1, won, "exactly one reservation must win the last unit")
    assert.Equal(t, 1, lost)

    var n int
    require.NoError(t, db.QueryRow(
        `SELECT COUNT(*) FROM reservation_items WHERE room_type_id = ?`, typeID).Scan(&n))
    assert.Equal(t, 1, n, "the loser must leave no rows behind")
}

func TestReserveRollsBackOnFault(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    boom := errors.New("boom")
    e.beforeCommit = func() error { return boom }

    typeID := seedRoomType(t, db, 2, 5000, true)
    in, out := futureStay(t, 30, 2)

    _, err := e.Reserve(context.Background(), model.Principal{}, reserveReq([]uint64{typeID}, in, out))
    require.ErrorIs(t, err, boom)

    var n int
    require.NoError(t, db.QueryRow(
        `SELECT COUNT(*) FROM reservation_items WHERE room_type_id = ?`, typeID).Scan(&n))
    assert.Zero(t, n)
}

func TestLifecycleTransitions(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    operator := model.Principal{UserID: 1, Role: model.RoleOperator}
    customer := model.Principal{UserID: 42, Role: model.RoleCustomer}

    typeID := seedRoomType(t, db, 5, 5000, true)
    in, out := futureStay(t, 30, 2)

    b, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)

    // pending -> cancelled, then cancelling again conflicts.
    got, err := e.ChangeStatus(ctx, customer, b.ID, model.BookingCancelled)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCancelled, got.Status)
    _, err = e.ChangeStatus(ctx, customer, b.ID, model.BookingCancelled)
    assert.ErrorIs(t, err, ErrStatusConflict)

    // pending -> paid -> completed; completed is terminal.
    b2, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)
    got, err = e.ChangeStatus(ctx, customer, b2.ID, model.BookingPaid)
    require.NoError(t, err)
    assert.Equal(t, model.PaymentSuccess, got.PaymentStatus)
    _, err = e.ChangeStatus(ctx, operator, b2.ID, model.BookingCompleted)
    require.NoError(t, err)
    _, err = e.ChangeStatus(ctx, operator, b2.ID, model.BookingCancelled)
    assert.ErrorIs(t, err, ErrStatusConflict)

    // pending -> completed skips payment and is rejected.
    b3, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)
    _, err = e.ChangeStatus(ctx, customer, b3.ID, model.BookingCompleted)
    assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestOwnershipHidesForeignBookings(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    owner := model.Principal{UserID: 10, Role: model.RoleCustomer}
    stranger := model.Principal{UserID: 11, Role: model.RoleCustomer}
    operator := model.Principal{UserID: 1, Role: model.RoleOperator}

    typeID := seedRoomType(t, db, 2, 5000, true)
    in, out := futureStay(t, 30, 2)
    b, err := e.Reserve(ctx, owner, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)

    // A foreign booking reads, transitions and deletes as not found.
    _, err = e.GetBooking(ctx, stranger, b.ID)
    assert.ErrorIs(t, err, repository.ErrBookingNotFound)
    _, err = e.ChangeStatus(ctx, stranger, b.ID, model.BookingCancelled)
    assert.ErrorIs(t, err, repository.ErrBookingNotFound)
    assert.ErrorIs(t, e.DeleteBooking(ctx, stranger, b.ID), repository.ErrBookingNotFound)

    got, err := e.GetBooking(ctx, operator, b.ID)
    require.NoError(t, err)
    assert.Equal(t, b.ID, got.ID)

    mine, err := e.ListBookings(ctx, owner)
    require.NoError(t, err)
    require.NotEmpty(t, mine)
    assert.Equal(t, b.ID, mine[0].ID)
}

func TestPaymentCallbackIdempotent(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    customer := model.Principal{UserID: 20, Role: model.RoleCustomer}

    typeID := seedRoomType(t, db, 2, 5000, true)
    in, out := futureStay(t, 30, 2)
    b, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)

    paidAt := time.Now().UTC().Truncate(time.Second)
    ref := "tx-" + b.MerchantRef
    cb := PaymentCallback{Status: model.PaymentSuccess, TransactionRef: ref, PaidAt: &paidAt}

    got, applied, err := e.ApplyPaymentCallback(ctx, b.ID, cb)
    require.NoError(t, err)
    assert.True(t, applied)
    assert.Equal(t, model.BookingPaid, got.Status)
    assert.Equal(t, model.PaymentSuccess, got.PaymentStatus)

    // The provider retries the same notification; nothing changes.
    got, applied, err = e.ApplyPaymentCallback(ctx, b.ID, cb)
    require.NoError(t, err)
    assert.False(t, applied)
    assert.Equal(t, model.BookingPaid, got.Status)
}

func TestPaymentFailureLeavesBookingPending(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    customer := model.Principal{UserID: 21, Role: model.RoleCustomer}

    typeID := seedRoomType(t, db, 2, 5000, true)
    in, out := futureStay(t, 30, 2)
    b, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)

    got, applied, err := e.ApplyPaymentCallback(ctx, b.ID,
        PaymentCallback{Status: model.PaymentFailed, TransactionRef: "fail-" + b.MerchantRef})
    require.NoError(t, err)
    assert.True(t, applied)
    assert.Equal(t, model.BookingPending, got.Status, "failed payment keeps the booking open for retry")
    assert.Equal(t, model.PaymentFailed, got.PaymentStatus)
}

func TestPaymentSuccessOnCancelledBookingKeepsStatus(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    customer := model.Principal{UserID: 22, Role: model.RoleCustomer}

    typeID := seedRoomType(t, db, 2, 5000, true)
    in, out := futureStay(t, 32, 2)
    b, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)

    _, err = e.ChangeStatus(ctx, customer, b.ID, model.BookingCancelled)
    require.NoError(t, err)

    // A late success callback still records the payment event, but the
    // pending-to-paid promotion is guarded and must not resurrect a
    // cancelled booking.
    got, applied, err := e.ApplyPaymentCallback(ctx, b.ID,
        PaymentCallback{Status: model.PaymentSuccess, TransactionRef: "late-" + b.MerchantRef})
    require.NoError(t, err)
    assert.True(t, applied)
    assert.Equal(t, model.BookingCancelled, got.Status)
    assert.Equal(t, model.PaymentSuccess, got.PaymentStatus)
}

func TestPaymentCallbackValidation(t *testing.T) {
    e := &Engine{now: time.Now}
    _, _, err := e.ApplyPaymentCallback(context.Background(), 1,
        PaymentCallback{Status: model.PaymentPending, TransactionRef: ""})
    var ve *ValidationError
    require.ErrorAs(t, err, &ve)
    assert.Contains(t, ve.Fields, "transaction_ref")
    assert.Contains(t, ve.Fields, "status")
}

func TestDeleteCascadesItems(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    customer := model.Principal{UserID: 30, Role: model.RoleCustomer}

    typeID := seedRoomType(t, db, 2, 5000, true)
    in, out := futureStay(t, 30, 2)
    b, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID, typeID}, in, out))
    require.NoError(t, err)

    require.NoError(t, e.DeleteBooking(ctx, customer, b.ID))

    var n int
    require.NoError(t, db.QueryRow(
        `SELECT COUNT(*) FROM reservation_items WHERE booking_id = ?`, b.ID).Scan(&n))
    assert.Zero(t, n, "items must go with the booking")

    _, err = e.GetBooking(ctx, customer, b.ID)
    assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestCalendar(t *testing.T) {
    db := setupTestDB(t)
    e := newTestEngine(t, db)
    ctx := context.Background()
    customer := model.Principal{UserID: 40, Role: model.RoleCustomer}

    typeID := seedRoomType(t, db, 2, 7500, true)
    in, out := futureStay(t, 30, 2)
    b, err := e.Reserve(ctx, customer, reserveReq([]uint64{typeID}, in, out))
    require.NoError(t, err)
    _, err = e.ChangeStatus(ctx, customer, b.ID, model.BookingPaid)
    require.NoError(t, err)

    days, err := e.Calendar(ctx, typeID, in.AddDate(0, 0, -1), out.AddDate(0, 0, 1))
    require.NoError(t, err)
    require.Len(t, days, 4)

    // Night before check-in and night of check-out are free.
    assert.Equal(t, 2, days[0].AvailableUnits)
    assert.Equal(t, 1, days[1].AvailableUnits)
    assert.Equal(t, 1, days[2].AvailableUnits)
    assert.Equal(t, 2, days[3].AvailableUnits)
    for _, d := range days {
        assert.Equal(t, 2, d.TotalUnits)
        assert.Equal(t, int64(7500), d.PriceCents)
    }

    // Span cap.
    _, err = e.Calendar(ctx, typeID, in, in.AddDate(0, 0, maxCalendarDays+1))
    var ve *ValidationError
    require.ErrorAs(t, err, &ve)
}
