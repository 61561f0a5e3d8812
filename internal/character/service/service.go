// Package service implements the character store operations: create, read,
// atomic patch updates, and graph-validated movement.
package service

import (
	"context"
	"fmt"

	"github.com/greywick/dungeonmind/internal/character"
	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
	"github.com/greywick/dungeonmind/internal/platform/id"
	"github.com/greywick/dungeonmind/internal/platform/keylock"
	"github.com/greywick/dungeonmind/internal/storage"
	"github.com/greywick/dungeonmind/internal/world"
)

// Service mediates all character mutations. Every mutation runs inside a
// per-character critical section and either fully applies or leaves the
// record untouched.
type Service struct {
	store storage.CharacterStore
	graph *world.Graph
	locks *keylock.Table
	newID func() (string, error)
}

// New creates a character service over the given store and world graph.
func New(store storage.CharacterStore, graph *world.Graph) *Service {
	return &Service{
		store: store,
		graph: graph,
		locks: keylock.NewTable(),
		newID: id.NewID,
	}
}

// CreateInput describes a character to admit into the store. ID is
// optional; when empty a fresh identifier is assigned. Zero-value fields
// fall back to the default starting sheet.
type CreateInput struct {
	ID        string
	Name      string
	Stats     map[string]int
	Inventory []string
	Gold      *int
	Location  string
}

// Create builds a character from the input and inserts it. A caller-supplied
// id that is already present fails with DUPLICATE_ID.
func (s *Service) Create(ctx context.Context, input CreateInput) (character.Character, error) {
	sheet := character.DefaultSheet(input.Name)
	if input.Stats != nil {
		sheet.Stats = input.Stats
	}
	if input.Inventory != nil {
		sheet.Inventory = input.Inventory
	}
	if input.Gold != nil {
		sheet.Gold = *input.Gold
	}

	sheet.Location = input.Location
	if sheet.Location == "" {
		sheet.Location = s.graph.Start()
	}
	if !s.graph.Contains(sheet.Location) {
		return character.Character{}, locationNotFound(sheet.Location)
	}

	if err := character.Validate(sheet); err != nil {
		return character.Character{}, err
	}

	sheet.ID = input.ID
	if sheet.ID == "" {
		generated, err := s.newID()
		if err != nil {
			return character.Character{}, fmt.Errorf("generate character id: %w", err)
		}
		sheet.ID = generated
	}

	if err := s.store.Put(ctx, sheet); err != nil {
		return character.Character{}, err
	}
	return sheet, nil
}

// Get returns a snapshot of the character with the given id.
func (s *Service) Get(ctx context.Context, characterID string) (character.Character, error) {
	return s.store.Get(ctx, characterID)
}

// Update applies a patch atomically. When the patch names a new location it
// must exist in the world graph. A failed patch leaves the stored record
// byte-for-byte unchanged.
func (s *Service) Update(ctx context.Context, characterID string, patch character.Patch) (character.Character, error) {
	unlock := s.locks.Lock(characterID)
	defer unlock()

	existing, err := s.store.Get(ctx, characterID)
	if err != nil {
		return character.Character{}, err
	}

	if patch.Location != nil && !s.graph.Contains(*patch.Location) {
		return character.Character{}, apperrors.WithMetadata(
			apperrors.CodeInvalidPatch,
			fmt.Sprintf("invalid patch for location: location %q not found", *patch.Location),
			map[string]string{"field": "location", "reason": "unknown location"},
		)
	}

	updated, err := character.ApplyPatch(existing, patch)
	if err != nil {
		return character.Character{}, err
	}

	if err := s.store.Update(ctx, updated); err != nil {
		return character.Character{}, err
	}
	return updated, nil
}

// Move steps the character one location in the given direction. On an
// invalid move the character's location is unchanged and the error names
// the valid directions.
func (s *Service) Move(ctx context.Context, characterID, direction string) (world.Location, error) {
	unlock := s.locks.Lock(characterID)
	defer unlock()

	existing, err := s.store.Get(ctx, characterID)
	if err != nil {
		return world.Location{}, err
	}

	from := existing.Location
	if from == "" {
		from = s.graph.Start()
	}

	destination, err := s.graph.Neighbor(from, direction)
	if err != nil {
		return world.Location{}, err
	}

	existing.Location = destination.ID
	if err := s.store.Update(ctx, existing); err != nil {
		return world.Location{}, err
	}
	return destination, nil
}

func locationNotFound(locationID string) error {
	return apperrors.WithMetadata(
		apperrors.CodeNotFound,
		fmt.Sprintf("location %q not found", locationID),
		map[string]string{"kind": "location", "id": locationID},
	)
}
