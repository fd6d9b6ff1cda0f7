package booking

import (
    "crypto/rand"
    "encoding/hex"
    "fmt"
    "time"
)

// maxRefAttempts bounds merchant reference regeneration when the
// unique index reports a collision.
const maxRefAttempts = 5

// newMerchantRef builds an externally facing booking reference:
// a second-resolution time prefix plus a random hex suffix, e.g.
// "BK-20251101153005-9f27c1a4".  The suffix comes from crypto/rand,
// so collisions are vanishingly rare; the unique index on
// bookings.merchant_ref and the bounded retry in Reserve handle the
// remainder.
func newMerchantRef(now time.Time) (string, error) {
    buf := make([]byte, 4)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return fmt.Sprintf("BK-%s-%s", now.UTC().Format("20060102150405"), hex.EncodeToString(buf)), nil
}
