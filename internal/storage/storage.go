// Package storage declares the persistence interfaces consumed by the
// session and character services.
package storage

import (
	"context"

	"github.com/greywick/dungeonmind/internal/character"
	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
	"github.com/greywick/dungeonmind/internal/session"
)

// ErrNotFound indicates a requested record is missing. Callers use this to
// differentiate between legitimate "no such entity" states and storage
// failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrDuplicateID indicates an insert collided with an existing record.
var ErrDuplicateID = apperrors.New(apperrors.CodeDuplicateID, "record already exists")

// CharacterStore persists character-sheet records.
type CharacterStore interface {
	// Put inserts a new character; it fails with ErrDuplicateID when the
	// id is already present.
	Put(ctx context.Context, c character.Character) error
	// Get returns a deep copy of the character with the given id.
	Get(ctx context.Context, id string) (character.Character, error)
	// Update replaces an existing character; it fails with ErrNotFound
	// when the id is absent.
	Update(ctx context.Context, c character.Character) error
}

// SessionStore persists session records.
type SessionStore interface {
	Put(ctx context.Context, s session.Session) error
	Get(ctx context.Context, id string) (session.Session, error)
	Update(ctx context.Context, s session.Session) error
}
