package session

import (
	"context"
	"time"

	"github.com/utafrali/glamstore/internal/domain"
)

// Session holds per-visitor state: the authenticated user (if any) and the
// cart. Version increments on every save and backs compare-and-set updates.
type Session struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id,omitempty"`
	UserName  string      `json:"user_name,omitempty"`
	Role      string      `json:"role,omitempty"`
	Cart      domain.Cart `json:"cart"`
	Version   int64       `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// New creates an empty session with the given ID.
func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Cart:      domain.Cart{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAuthenticated reports whether a user is logged in on this session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// IsAdmin reports whether the session belongs to an admin user.
func (s *Session) IsAdmin() bool {
	return s.Role == domain.RoleAdmin
}

// Store persists sessions.
type Store interface {
	// Get returns the session with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Save writes the session unconditionally and bumps its version.
	Save(ctx context.Context, s *Session) error

	// SaveIfVersion writes the session only if the stored version still
	// equals expectedVersion. Returns ErrConflict otherwise.
	SaveIfVersion(ctx context.Context, s *Session, expectedVersion int64) error

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
