package redis

import (
	"fmt"
	"time"

	"github.com/nftmarket/goapi/base/ctx"
)

// Forever means the key has no associated expire
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = fmt.Errorf("redis key not found")

	// ErrGapTime is returned when no pool is available to serve the command
	ErrGapTime = fmt.Errorf("in gap time")
)

// Service abstracts the redis layer
type Service interface {
	// Get gets raw bytes stored at key. Returns ErrNotFound if key does not exist.
	Get(context ctx.Ctx, key string) ([]byte, error)

	// Set sets raw bytes at key with expire. Use Forever to skip expiration.
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// Del deletes keys and returns the number of keys removed
	Del(context ctx.Ctx, ks ...string) (int, error)
}
