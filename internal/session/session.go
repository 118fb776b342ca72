// Package session holds the staff login state: the backend-issued bearer
// token and the signed-in profile, keyed by the browser's session-ID cookie.
// No other package touches tokens except through a Store.
package session

import (
	"context"
	"errors"

	"github.com/flowerstore/admin-dashboard/internal/api"
)

var ErrNotFound = errors.New("session not found")

// Session is the persisted login state for one browser. Logout resets the
// token to the empty string rather than dropping the entry.
type Session struct {
	Token string    `json:"token"`
	User  *api.User `json:"user,omitempty"`
}

// Authenticated reports whether the session carries a usable token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store persists sessions across process restarts under a fixed namespace.
type Store interface {
	Get(ctx context.Context, sid string) (Session, error)
	Set(ctx context.Context, sid string, sess Session) error
	// Clear resets the session's token to the empty string, keeping the entry.
	Clear(ctx context.Context, sid string) error
}
