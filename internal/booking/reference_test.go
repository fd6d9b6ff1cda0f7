package booking

import (
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestMerchantRefFormat(t *testing.T) {
    now := time.Date(2026, 9, 1, 10, 30, 45, 0, time.UTC)
    ref, err := newMerchantRef(now)
    require.NoError(t, err)

    parts := strings.Split(ref, "-")
    require.Len(t, parts, 3)
    assert.Equal(t, "BK", parts[0])
    assert.Equal(t, "20260901103045", parts[1])
    assert.Len(t, parts[2], 8)
}

func TestMerchantRefRandomSuffix(t *testing.T) {
    now := time.Now()
    seen := make(map[string]bool)
    for i := 0; i < 100; i++ {
        ref, err := newMerchantRef(now)
        require.NoError(t, err)
        assert.False(t, seen[ref], "duplicate reference %q", ref)
        seen[ref] = true
    }
}
