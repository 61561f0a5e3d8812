// Package world models the navigable game map as an immutable graph of
// locations connected by directional edges.
package world

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
)

// Location is a node in the map graph. Exits maps a direction label to the
// identifier of the neighboring location. Edges need not be symmetric; a
// one-way passage is legal.
type Location struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Exits       map[string]string `yaml:"exits"`
}

// Graph is the static world map. It is immutable after New and safe for
// concurrent lookups.
type Graph struct {
	locations map[string]Location
	start     string
}

// New builds a graph from locations and validates its invariants: ids must
// be unique, every edge must target an existing location, and the start
// location must exist.
func New(locations []Location, start string) (*Graph, error) {
	byID := make(map[string]Location, len(locations))
	for _, loc := range locations {
		id := strings.TrimSpace(loc.ID)
		if id == "" {
			return nil, fmt.Errorf("location id is required")
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("duplicate location id %q", id)
		}
		loc.ID = id
		byID[id] = loc
	}

	for _, loc := range byID {
		for direction, target := range loc.Exits {
			if _, ok := byID[target]; !ok {
				return nil, fmt.Errorf("location %q has dangling %s edge to unknown location %q", loc.ID, direction, target)
			}
		}
	}

	if _, ok := byID[start]; !ok {
		return nil, fmt.Errorf("start location %q not found", start)
	}

	return &Graph{locations: byID, start: start}, nil
}

// Start returns the identifier of the configured starting location.
func (g *Graph) Start() string {
	return g.start
}

// Describe returns the location with the given identifier.
func (g *Graph) Describe(id string) (Location, error) {
	loc, ok := g.locations[id]
	if !ok {
		return Location{}, notFound(id)
	}
	return loc, nil
}

// Neighbor resolves one step from a location in the given direction.
// Direction matching is case-insensitive. An unknown direction fails with
// an INVALID_MOVE error that names the valid directions so the caller can
// retry without re-querying.
func (g *Graph) Neighbor(id, direction string) (Location, error) {
	loc, ok := g.locations[id]
	if !ok {
		return Location{}, notFound(id)
	}

	normalized := strings.ToLower(strings.TrimSpace(direction))
	target, ok := loc.Exits[normalized]
	if !ok {
		valid := g.Directions(id)
		return Location{}, apperrors.WithMetadata(
			apperrors.CodeInvalidMove,
			fmt.Sprintf("no exit %s from %s (valid directions: %s)", normalized, id, strings.Join(valid, ", ")),
			map[string]string{
				"location":         id,
				"direction":        normalized,
				"valid_directions": strings.Join(valid, ","),
			},
		)
	}
	return g.locations[target], nil
}

// Directions returns the sorted direction labels available from a location.
// An unknown location yields nil.
func (g *Graph) Directions(id string) []string {
	loc, ok := g.locations[id]
	if !ok {
		return nil
	}
	directions := make([]string, 0, len(loc.Exits))
	for direction := range loc.Exits {
		directions = append(directions, direction)
	}
	sort.Strings(directions)
	return directions
}

// DirectionOf returns the direction label leading from one location to
// another, when a direct edge exists.
func (g *Graph) DirectionOf(fromID, toID string) (string, bool) {
	loc, ok := g.locations[fromID]
	if !ok {
		return "", false
	}
	// Iterate sorted so multi-edge pairs resolve deterministically.
	for _, direction := range g.Directions(fromID) {
		if loc.Exits[direction] == toID {
			return direction, true
		}
	}
	return "", false
}

// Contains reports whether a location id exists in the graph.
func (g *Graph) Contains(id string) bool {
	_, ok := g.locations[id]
	return ok
}

func notFound(id string) error {
	return apperrors.WithMetadata(
		apperrors.CodeNotFound,
		fmt.Sprintf("location %q not found", id),
		map[string]string{"kind": "location", "id": id},
	)
}
