// Package session defines the game-session domain model: a bound play
// context tracking participants and the party's current location.
package session

import "time"

// Session binds participant characters to a current map location for one
// conversation. Characters are referenced by identifier only; the character
// store remains the single source of truth for their records.
//
// Location starts empty and is resolved lazily to the configured starting
// location on first read, so sessions created before the world is explored
// stay cheap.
type Session struct {
	ID           string
	CreatedAt    time.Time
	CharacterIDs []string
	Location     string
}

// Clone returns a deep copy safe to hand outside the store.
func (s Session) Clone() Session {
	cloned := s
	if s.CharacterIDs != nil {
		cloned.CharacterIDs = append([]string(nil), s.CharacterIDs...)
	}
	return cloned
}

// HasCharacter reports whether the character already participates.
func (s Session) HasCharacter(characterID string) bool {
	for _, id := range s.CharacterIDs {
		if id == characterID {
			return true
		}
	}
	return false
}

// AddCharacter adds a participant, preserving join order. Adding a
// participant twice is a no-op, keeping joins idempotent.
func (s *Session) AddCharacter(characterID string) {
	if s.HasCharacter(characterID) {
		return
	}
	s.CharacterIDs = append(s.CharacterIDs, characterID)
}
