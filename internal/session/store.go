// Package session keeps the mapping from the cookie-sized session ID the
// browser holds to the upstream portal token the server holds on its behalf.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

var ErrNotFound = errors.New("session not found")

// Store persists sessions for the configured TTL. Delete is idempotent; it is
// called both on logout and whenever the upstream rejects a token.
type Store interface {
	Save(ctx context.Context, s *model.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
