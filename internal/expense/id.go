package expense

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces candidate expense ids. The store rejects candidates
// that collide with a live id and asks again.
type IDGenerator interface {
	NewID() string
}

const (
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLen      = 9
)

// TimestampIDs builds ids from the current Unix millisecond and a random base-36 suffix.
type TimestampIDs struct {
	Now func() time.Time
}

func (g TimestampIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	buf := make([]byte, suffixLen)
	for i := range buf {
		buf[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}

	return strconv.FormatInt(now().UnixMilli(), 10) + string(buf)
}

// UUIDs generates random (version 4) UUID strings.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}

// IDScheme names an id generator in configuration.
type IDScheme string

const (
	SchemeTimestamp IDScheme = "timestamp"
	SchemeUUID      IDScheme = "uuid"
)

// GeneratorFor returns the generator for the scheme, defaulting to timestamps.
func GeneratorFor(s IDScheme) IDGenerator {
	if s == SchemeUUID {
		return UUIDs{}
	}

	return TimestampIDs{}
}
