// Package lore defines the read-only world knowledge catalog: geographic
// regions, non-player characters, creature stat blocks, and prepared
// adventure scenarios. Entries are addressed by normalized snake_case keys.
package lore

import "strings"

// Region describes a geographic area of the game world.
type Region struct {
	Key             string
	Description     string
	NotableFeatures []string
	Connections     []string
}

// NPC describes a non-player character the party can interact with.
type NPC struct {
	Key         string
	Name        string
	Role        string
	Description string
	Personality string
	KnowsAbout  []string
}

// CreatureStats is the combat stat block for a creature type.
type CreatureStats struct {
	HP     int `json:"hp"`
	Armor  int `json:"armor"`
	Attack int `json:"attack"`
}

// Creature describes a creature type for combat encounters.
type Creature struct {
	Key         string
	Type        string
	Description string
	Stats       CreatureStats
	Weaknesses  []string
	Abilities   []string
}

// Scenario is a prepared adventure hook for the game master.
type Scenario struct {
	ID      string
	Title   string
	Hook    string
	Details string
	Rewards []string
}

// NormalizeKey maps a free-form query to catalog key form: lowercase with
// spaces collapsed to underscores.
func NormalizeKey(query string) string {
	key := strings.ToLower(strings.TrimSpace(query))
	return strings.ReplaceAll(key, " ", "_")
}
