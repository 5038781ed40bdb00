// Package session tracks active sign-ins and decides when a restored
// session is too stale to trust.
package session

import (
	"context"
	"errors"
	"time"
)

// StaleAfter is the maximum gap between the last heartbeat and a
// restore attempt. A client that was away longer is signed out.
const StaleAfter = 2000 * time.Millisecond

var (
	ErrNotFound = errors.New("session not found")
	ErrStale    = errors.New("session stale")
)

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

func (s Session) StaleAt(now time.Time) bool {
	return now.Sub(s.LastSeen) > StaleAfter
}

type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Touch records a heartbeat, pushing the staleness deadline forward.
	Touch(ctx context.Context, id string, now time.Time) error
	Delete(ctx context.Context, id string) error
}

// Restore fetches a session and applies the staleness rule: a session
// whose last heartbeat is older than StaleAfter is deleted and ErrStale
// is returned, forcing a fresh login.
func Restore(ctx context.Context, store Store, id string, now time.Time) (Session, error) {
	s, err := store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if s.StaleAt(now) {
		_ = store.Delete(ctx, id)
		return Session{}, ErrStale
	}
	if err := store.Touch(ctx, id, now); err != nil {
		return Session{}, err
	}
	s.LastSeen = now
	return s, nil
}
