package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// TrackingPrefix is the customer-visible prefix on every tracking number.
const TrackingPrefix = "ENO"

// GenerateTrackingNumber returns a tracking number of the form
// ENO + 12 upper-case hex characters. Collisions are astronomically
// unlikely but callers still verify uniqueness before committing.
func GenerateTrackingNumber() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// nothing sensible to do but panic.
		panic(err)
	}
	return TrackingPrefix + strings.ToUpper(hex.EncodeToString(buf))
}
