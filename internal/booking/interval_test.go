package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "pgregory.net/rapid"
)

func date(s string) time.Time {
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        panic(err)
    }
    return t
}

func TestStayValidAndNights(t *testing.T) {
    cases := []struct {
        name     string
        in, out  string
        valid    bool
        nights   int
    }{
        {"one night", "2026-09-01", "2026-09-02", true, 1},
        {"week", "2026-09-01", "2026-09-08", true, 7},
        {"zero nights", "2026-09-01", "2026-09-01", false, 1},
        {"inverted", "2026-09-05", "2026-09-01", false, 1},
        {"month boundary", "2026-08-30", "2026-09-02", true, 3},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            s := NewStay(date(tc.in), date(tc.out))
            assert.Equal(t, tc.valid, s.Valid())
            assert.Equal(t, tc.nights, s.Nights())
        })
    }
}

func TestNewStayNormalizesToUTCMidnight(t *testing.T) {
    loc := time.FixedZone("UTC+3:30", int(3*time.Hour+30*time.Minute)/int(time.Second))
    in := time.Date(2026, 9, 1, 14, 30, 0, 0, loc)
    s := NewStay(in, in.AddDate(0, 0, 2))
    assert.Equal(t, time.UTC, s.CheckIn.Location())
    assert.Equal(t, 0, s.CheckIn.Hour())
    assert.Equal(t, 2, s.Nights())
}

func TestOverlapsAdjacentStays(t *testing.T) {
    a := NewStay(date("2026-09-01"), date("2026-09-05"))
    b := NewStay(date("2026-09-05"), date("2026-09-08"))
    assert.False(t, a.Overlaps(b), "back-to-back stays share no night")
    assert.False(t, b.Overlaps(a))

    c := NewStay(date("2026-09-04"), date("2026-09-06"))
    assert.True(t, a.Overlaps(c))
}

func TestOverlapsProperties(t *testing.T) {
    epoch := date("2026-01-01")
    gen := func(t *rapid.T, label string) Stay {
        start := rapid.IntRange(0, 365).Draw(t, label+"_start")
        nights := rapid.IntRange(1, 30).Draw(t, label+"_nights")
        return Stay{
            CheckIn:  epoch.AddDate(0, 0, start),
            CheckOut: epoch.AddDate(0, 0, start+nights),
        }
    }
    rapid.Check(t, func(t *rapid.T) {
        a, b := gen(t, "a"), gen(t, "b")

        // Symmetry.
        if a.Overlaps(b) != b.Overlaps(a) {
            t.Fatalf("overlap is not symmetric: %v vs %v", a, b)
        }
        // A stay always overlaps itself.
        if !a.Overlaps(a) {
            t.Fatalf("stay does not overlap itself: %v", a)
        }
        // Overlap agrees with sharing at least one night.
        shared := false
        for d := a.CheckIn; d.Before(a.CheckOut); d = d.AddDate(0, 0, 1) {
            if !d.Before(b.CheckIn) && d.Before(b.CheckOut) {
                shared = true
                break
            }
        }
        if a.Overlaps(b) != shared {
            t.Fatalf("overlap=%v but shared nights=%v for %v / %v", a.Overlaps(b), shared, a, b)
        }
    })
}

func TestNightsMatchesDaySpan(t *testing.T) {
    epoch := date("2026-01-01")
    rapid.Check(t, func(t *rapid.T) {
        start := rapid.IntRange(0, 365).Draw(t, "start")
        nights := rapid.IntRange(1, 60).Draw(t, "nights")
        s := Stay{CheckIn: epoch.AddDate(0, 0, start), CheckOut: epoch.AddDate(0, 0, start+nights)}
        if got := s.Nights(); got != nights {
            t.Fatalf("Nights() = %d, want %d", got, nights)
        }
    })
}

func TestParseDate(t *testing.T) {
    got, err := ParseDate("2026-02-28")
    require.NoError(t, err)
    assert.Equal(t, date("2026-02-28"), got)

    _, err = ParseDate("28/02/2026")
    assert.Error(t, err)
}
