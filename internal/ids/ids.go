// Package ids generates unique string identifiers for new entities.
package ids

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const hexDigits = "0123456789abcdef"

// New returns a statistically-unique string id suitable as a primary key.
// It prefers a cryptographically strong random UUID and falls back to a
// pseudo-random UUID-shaped string when the crypto source is unavailable.
// Uniqueness holds only up to collision probability; the ids are not
// suitable for security purposes.
func New() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return pseudo()
	}
	return id.String()
}

// pseudo builds a version-4-shaped UUID string from math/rand.
func pseudo() string {
	var b [36]byte
	for i := range b {
		switch i {
		case 8, 13, 18, 23:
			b[i] = '-'
		case 14:
			b[i] = '4'
		case 19:
			b[i] = hexDigits[8+rand.IntN(4)]
		default:
			b[i] = hexDigits[rand.IntN(16)]
		}
	}
	return string(b[:])
}
