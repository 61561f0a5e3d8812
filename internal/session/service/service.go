// Package service implements the session lifecycle: creation, state
// snapshots, party membership, and party movement through the world graph.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/greywick/dungeonmind/internal/character"
	"github.com/greywick/dungeonmind/internal/platform/id"
	"github.com/greywick/dungeonmind/internal/platform/keylock"
	"github.com/greywick/dungeonmind/internal/session"
	"github.com/greywick/dungeonmind/internal/storage"
	"github.com/greywick/dungeonmind/internal/world"
)

// Manager coordinates game sessions. Session ids are always server
// allocated. Mutations on a single session are serialized through a
// per-session lock so two concurrent moves compose instead of clobbering
// each other.
type Manager struct {
	sessions   storage.SessionStore
	characters storage.CharacterStore
	graph      *world.Graph
	locks      *keylock.Table
	now        func() time.Time
	newID      func() (string, error)
}

// New creates a session manager over the given stores and world graph.
func New(sessions storage.SessionStore, characters storage.CharacterStore, graph *world.Graph) *Manager {
	return &Manager{
		sessions:   sessions,
		characters: characters,
		graph:      graph,
		locks:      keylock.NewTable(),
		now:        time.Now,
		newID:      id.NewID,
	}
}

// State is a point-in-time snapshot of a session: the session record, the
// resolved party location, and deep copies of every member's sheet.
type State struct {
	Session    session.Session
	Location   world.Location
	Characters []character.Character
}

// Create starts a new empty session at the world's starting location.
func (m *Manager) Create(ctx context.Context) (session.Session, error) {
	sessionID, err := m.newID()
	if err != nil {
		return session.Session{}, fmt.Errorf("generate session id: %w", err)
	}

	// Location stays empty here and resolves to the world start on first
	// read, so the start room can be anything the graph was built with.
	record := session.Session{
		ID:        sessionID,
		CreatedAt: m.now().UTC(),
	}
	if err := m.sessions.Put(ctx, record); err != nil {
		return session.Session{}, err
	}
	return record, nil
}

// State returns a snapshot of the session and its party. Sessions recorded
// without a location resolve to the world start.
func (m *Manager) State(ctx context.Context, sessionID string) (State, error) {
	record, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	locationID := record.Location
	if locationID == "" {
		locationID = m.graph.Start()
		record.Location = locationID
	}
	location, err := m.graph.Describe(locationID)
	if err != nil {
		return State{}, err
	}

	members := make([]character.Character, 0, len(record.CharacterIDs))
	for _, characterID := range record.CharacterIDs {
		member, err := m.characters.Get(ctx, characterID)
		if err != nil {
			return State{}, fmt.Errorf("load party member %s: %w", characterID, err)
		}
		members = append(members, member)
	}

	return State{Session: record, Location: location, Characters: members}, nil
}

// Join adds an existing character to an existing session. Joining twice is
// a no-op; join order is preserved in the session record.
func (m *Manager) Join(ctx context.Context, sessionID, characterID string) (session.Session, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	record, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return session.Session{}, err
	}
	if _, err := m.characters.Get(ctx, characterID); err != nil {
		return session.Session{}, err
	}

	if record.HasCharacter(characterID) {
		return record, nil
	}

	record.AddCharacter(characterID)
	if err := m.sessions.Update(ctx, record); err != nil {
		return session.Session{}, err
	}
	return record, nil
}

// Move advances the whole party one location in the given direction. The
// session's location is the single source of truth for where the party is;
// a failed move leaves it untouched.
func (m *Manager) Move(ctx context.Context, sessionID, direction string) (world.Location, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	record, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return world.Location{}, err
	}

	from := record.Location
	if from == "" {
		from = m.graph.Start()
	}

	destination, err := m.graph.Neighbor(from, direction)
	if err != nil {
		return world.Location{}, err
	}

	record.Location = destination.ID
	if err := m.sessions.Update(ctx, record); err != nil {
		return world.Location{}, err
	}
	return destination, nil
}

// Describe reports the session's current location without mutating it.
func (m *Manager) Describe(ctx context.Context, sessionID string) (world.Location, []string, error) {
	record, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return world.Location{}, nil, err
	}

	locationID := record.Location
	if locationID == "" {
		locationID = m.graph.Start()
	}
	location, err := m.graph.Describe(locationID)
	if err != nil {
		return world.Location{}, nil, err
	}
	return location, m.graph.Directions(location.ID), nil
}
