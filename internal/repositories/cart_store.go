package repositories

import "context"

// CartStore persists serialized cart snapshots keyed by customer session.
// The stored bytes are the versioned snapshot form owned by the cart
// package; the store never interprets them.
type CartStore interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, snapshot []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// ErrCartNotFound is returned when no snapshot exists for a session.
// Callers treat it as "empty cart", not a failure.
type ErrCartNotFound struct {
	SessionID string
}

func (e *ErrCartNotFound) Error() string {
	return "no cart stored for session " + e.SessionID
}
