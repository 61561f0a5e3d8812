// Package memory provides in-process store implementations. Game state has
// no durability requirement beyond the server's lifetime, so the memory
// backend is the production store for sessions and characters.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/greywick/dungeonmind/internal/character"
	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
	"github.com/greywick/dungeonmind/internal/session"
	"github.com/greywick/dungeonmind/internal/storage"
)

// CharacterStore is a mutex-guarded in-memory character store. Records are
// deep-copied on the way in and out so callers can never mutate store-owned
// state through a returned value.
type CharacterStore struct {
	mu      sync.RWMutex
	records map[string]character.Character
}

// NewCharacterStore creates an empty character store.
func NewCharacterStore() *CharacterStore {
	return &CharacterStore{records: make(map[string]character.Character)}
}

// Put implements storage.CharacterStore.
func (s *CharacterStore) Put(ctx context.Context, c character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[c.ID]; exists {
		return duplicate("character", c.ID)
	}
	s.records[c.ID] = c.Clone()
	return nil
}

// Get implements storage.CharacterStore.
func (s *CharacterStore) Get(ctx context.Context, id string) (character.Character, error) {
	if err := ctx.Err(); err != nil {
		return character.Character{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return character.Character{}, notFound("character", id)
	}
	return record.Clone(), nil
}

// Update implements storage.CharacterStore.
func (s *CharacterStore) Update(ctx context.Context, c character.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[c.ID]; !exists {
		return notFound("character", c.ID)
	}
	s.records[c.ID] = c.Clone()
	return nil
}

// SessionStore is a mutex-guarded in-memory session store.
type SessionStore struct {
	mu      sync.RWMutex
	records map[string]session.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{records: make(map[string]session.Session)}
}

// Put implements storage.SessionStore.
func (s *SessionStore) Put(ctx context.Context, record session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ID]; exists {
		return duplicate("session", record.ID)
	}
	s.records[record.ID] = record.Clone()
	return nil
}

// Get implements storage.SessionStore.
func (s *SessionStore) Get(ctx context.Context, id string) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return session.Session{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return session.Session{}, notFound("session", id)
	}
	return record.Clone(), nil
}

// Update implements storage.SessionStore.
func (s *SessionStore) Update(ctx context.Context, record session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ID]; !exists {
		return notFound("session", record.ID)
	}
	s.records[record.ID] = record.Clone()
	return nil
}

func notFound(kind, id string) error {
	return apperrors.WithMetadata(
		apperrors.CodeNotFound,
		fmt.Sprintf("%s %q not found", kind, id),
		map[string]string{"kind": kind, "id": id},
	)
}

func duplicate(kind, id string) error {
	return apperrors.WithMetadata(
		apperrors.CodeDuplicateID,
		fmt.Sprintf("%s %q already exists", kind, id),
		map[string]string{"kind": kind, "id": id},
	)
}

// Interface conformance checks.
var (
	_ storage.CharacterStore = (*CharacterStore)(nil)
	_ storage.SessionStore   = (*SessionStore)(nil)
)
