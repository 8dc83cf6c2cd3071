// Package identity supplies the system clock and tracking number generation
// behind ports.IdentityProvider.
package identity

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"couriertrack/internal/core/domain/model/kernel"
)

// SystemIdentityProvider draws time from the system clock and tracking numbers
// from crypto/rand. Tracking numbers are not guaranteed unique here; the
// parcel store's unique index is the gatekeeper and callers retry on a clash.
type SystemIdentityProvider struct{}

// NewSystemIdentityProvider creates the production identity provider.
func NewSystemIdentityProvider() SystemIdentityProvider {
	return SystemIdentityProvider{}
}

// Now returns the current time.
func (p SystemIdentityProvider) Now() time.Time {
	return time.Now()
}

// NewTrackingNumber returns a fresh "CP" tracking number with nine random digits.
func (p SystemIdentityProvider) NewTrackingNumber() kernel.TrackingNumber {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the platform's entropy source is broken;
		// nothing sensible to fall back to.
		panic(fmt.Sprintf("identity: reading random bytes: %v", err))
	}

	digits := binary.BigEndian.Uint64(buf[:]) % 1_000_000_000

	tn, err := kernel.NewTrackingNumber(
		fmt.Sprintf("%s%09d", kernel.TrackingNumberPrefix, digits))
	if err != nil {
		panic(fmt.Sprintf("identity: generated malformed tracking number: %v", err))
	}
	return tn
}
