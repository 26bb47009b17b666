package directory

import (
	"strconv"
	"time"

	"github.com/agentstation/roster/pkg/errors"
)

// Cursor is the opaque token round-tripped by the host for stateful
// listing. It carries a single millisecond timestamp; the connector does
// not validate its age or interpret it beyond numeric parsing — what
// "changed after this time" means is store-defined.
type Cursor struct {
	Timestamp time.Time
}

// NewCursor returns a cursor set to the current time.
func NewCursor() Cursor {
	return Cursor{Timestamp: time.Now()}
}

// ParseCursor decodes a cursor token previously produced by String.
func ParseCursor(token string) (Cursor, error) {
	ms, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return Cursor{}, errors.WrapParse("cursor", token, err)
	}
	return Cursor{Timestamp: time.UnixMilli(ms)}, nil
}

// String encodes the cursor as its millisecond timestamp.
func (c Cursor) String() string {
	return strconv.FormatInt(c.Timestamp.UnixMilli(), 10)
}

// IsZero reports whether the cursor is unset.
func (c Cursor) IsZero() bool {
	return c.Timestamp.IsZero()
}
