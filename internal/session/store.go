// Package session persists wizard working state. Drafts and carts are
// ephemeral: they live in a keyed store with a TTL, never in the relational
// database, and disappear when the visitor walks away.
package session

import (
	"context"
	"errors"

	"github.com/vivario/reservation-service/internal/wizard"
)

var ErrNotFound = errors.New("session not found")

// DraftStore persists one ReservationDraft per wizard session.
type DraftStore interface {
	Get(ctx context.Context, sessionID string) (*wizard.ReservationDraft, error)
	Save(ctx context.Context, draft *wizard.ReservationDraft) error
	Delete(ctx context.Context, sessionID string) error
}

// CartStore persists the experience cart of a session as an ordered id list.
type CartStore interface {
	Get(ctx context.Context, sessionID string) ([]uint, error)
	Add(ctx context.Context, sessionID string, experienceID uint) error
	Remove(ctx context.Context, sessionID string, experienceID uint) error
	Clear(ctx context.Context, sessionID string) error
}
