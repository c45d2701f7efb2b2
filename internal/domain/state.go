package domain

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrNoSnapshot is returned by Snapshotter.Load when no document has been
// persisted yet.
var ErrNoSnapshot = errors.New("no state snapshot")

// ErrInvalidCredentials is returned when no user matches an email+password
// pair exactly. It is distinct from storage failures.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNotFound is returned by read accessors when an entity id is unknown
var ErrNotFound = errors.New("not found")

// Snapshotter persists the serialized state document as a single value.
// Implementations back it with Redis, Postgres or process memory.
type Snapshotter interface {
	// Load returns the raw document, or ErrNoSnapshot if none exists
	Load(ctx context.Context) ([]byte, error)
	// Save overwrites the document in full
	Save(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// NewID generates a collection-unique id with an entity prefix,
// e.g. "s3f0a1b2c4d5e6f7" for a ship.
func NewID(prefix string) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return prefix + hex.EncodeToString(buf)
	}
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}
