package mcpserver

import (
	"context"

	"github.com/greywick/dungeonmind/internal/lore"
	loresqlite "github.com/greywick/dungeonmind/internal/lore/sqlite"
	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// suggestOnMiss builds the not-found portion of a lookup result. A lookup
// miss is a successful tool call, not an error, so the agent can retry
// with one of the suggestions.
func suggestOnMiss(ctx context.Context, err error, query string, candidates func(context.Context) ([]string, error)) ([]string, error) {
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		return nil, err
	}
	keys, listErr := candidates(ctx)
	if listErr != nil {
		return nil, listErr
	}
	return lore.Suggest(lore.NormalizeKey(query), keys), nil
}

// LookupGeographyInput represents the MCP tool input for a region lookup.
type LookupGeographyInput struct {
	Region string `json:"region" jsonschema:"name of the region to look up, e.g. darkwood_forest"`
}

// LookupGeographyResult represents the MCP tool output for a region lookup.
type LookupGeographyResult struct {
	Found           bool     `json:"found" jsonschema:"whether the region exists"`
	Region          string   `json:"region,omitempty" jsonschema:"normalized region key"`
	Description     string   `json:"description,omitempty" jsonschema:"description of the area"`
	NotableFeatures []string `json:"notable_features,omitempty" jsonschema:"interesting features"`
	Connections     []string `json:"connections,omitempty" jsonschema:"connected regions"`
	Query           string   `json:"query,omitempty" jsonschema:"search term, when not found"`
	Suggestions     []string `json:"suggestions,omitempty" jsonschema:"similar region names, when not found"`
}

// LookupGeographyTool defines the MCP tool schema for region lookups.
func LookupGeographyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lookup_geography",
		Description: "Looks up a geographic region: description, notable features, and connections.",
	}
}

// LookupGeographyHandler executes a region lookup.
func LookupGeographyHandler(catalog *loresqlite.Store) mcp.ToolHandlerFor[LookupGeographyInput, LookupGeographyResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupGeographyInput) (*mcp.CallToolResult, LookupGeographyResult, error) {
		region, err := catalog.Region(ctx, lore.NormalizeKey(input.Region))
		if err != nil {
			suggestions, err := suggestOnMiss(ctx, err, input.Region, catalog.RegionKeys)
			if err != nil {
				return nil, LookupGeographyResult{}, err
			}
			return nil, LookupGeographyResult{Query: input.Region, Suggestions: suggestions}, nil
		}
		return nil, LookupGeographyResult{
			Found:           true,
			Region:          region.Key,
			Description:     region.Description,
			NotableFeatures: region.NotableFeatures,
			Connections:     region.Connections,
		}, nil
	}
}

// LookupNPCInput represents the MCP tool input for an NPC lookup.
type LookupNPCInput struct {
	Name string `json:"name" jsonschema:"name or identifier of the NPC, e.g. marta_innkeeper"`
}

// LookupNPCResult represents the MCP tool output for an NPC lookup.
type LookupNPCResult struct {
	Found       bool     `json:"found" jsonschema:"whether the NPC exists"`
	Name        string   `json:"name,omitempty" jsonschema:"the NPC's display name"`
	Role        string   `json:"role,omitempty" jsonschema:"occupation or role"`
	Description string   `json:"description,omitempty" jsonschema:"physical description"`
	Personality string   `json:"personality,omitempty" jsonschema:"personality traits"`
	KnowsAbout  []string `json:"knows_about,omitempty" jsonschema:"topics the NPC can discuss"`
	Query       string   `json:"query,omitempty" jsonschema:"search term, when not found"`
	Suggestions []string `json:"suggestions,omitempty" jsonschema:"similar NPC names, when not found"`
}

// LookupNPCTool defines the MCP tool schema for NPC lookups.
func LookupNPCTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lookup_npc",
		Description: "Looks up a non-player character: role, description, personality, and known topics.",
	}
}

// LookupNPCHandler executes an NPC lookup.
func LookupNPCHandler(catalog *loresqlite.Store) mcp.ToolHandlerFor[LookupNPCInput, LookupNPCResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupNPCInput) (*mcp.CallToolResult, LookupNPCResult, error) {
		npc, err := catalog.NPC(ctx, lore.NormalizeKey(input.Name))
		if err != nil {
			suggestions, err := suggestOnMiss(ctx, err, input.Name, catalog.NPCNames)
			if err != nil {
				return nil, LookupNPCResult{}, err
			}
			return nil, LookupNPCResult{Query: input.Name, Suggestions: suggestions}, nil
		}
		return nil, LookupNPCResult{
			Found:       true,
			Name:        npc.Name,
			Role:        npc.Role,
			Description: npc.Description,
			Personality: npc.Personality,
			KnowsAbout:  npc.KnowsAbout,
		}, nil
	}
}

// LookupCreatureInput represents the MCP tool input for a creature lookup.
type LookupCreatureInput struct {
	CreatureType string `json:"creature_type" jsonschema:"type of creature, e.g. wolf or goblin"`
}

// LookupCreatureResult represents the MCP tool output for a creature lookup.
type LookupCreatureResult struct {
	Found       bool               `json:"found" jsonschema:"whether the creature exists"`
	Type        string             `json:"type,omitempty" jsonschema:"the creature type name"`
	Description string             `json:"description,omitempty" jsonschema:"description of the creature"`
	Stats       lore.CreatureStats `json:"stats,omitempty" jsonschema:"combat statistics"`
	Weaknesses  []string           `json:"weaknesses,omitempty" jsonschema:"vulnerabilities"`
	Abilities   []string           `json:"abilities,omitempty" jsonschema:"special abilities"`
	Query       string             `json:"query,omitempty" jsonschema:"search term, when not found"`
	Suggestions []string           `json:"suggestions,omitempty" jsonschema:"similar creature types, when not found"`
}

// LookupCreatureTool defines the MCP tool schema for creature lookups.
func LookupCreatureTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lookup_creature",
		Description: "Looks up a creature type for combat encounters: stats, weaknesses, and abilities.",
	}
}

// LookupCreatureHandler executes a creature lookup.
func LookupCreatureHandler(catalog *loresqlite.Store) mcp.ToolHandlerFor[LookupCreatureInput, LookupCreatureResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupCreatureInput) (*mcp.CallToolResult, LookupCreatureResult, error) {
		creature, err := catalog.Creature(ctx, lore.NormalizeKey(input.CreatureType))
		if err != nil {
			suggestions, err := suggestOnMiss(ctx, err, input.CreatureType, catalog.CreatureKeys)
			if err != nil {
				return nil, LookupCreatureResult{}, err
			}
			return nil, LookupCreatureResult{Query: input.CreatureType, Suggestions: suggestions}, nil
		}
		return nil, LookupCreatureResult{
			Found:       true,
			Type:        creature.Type,
			Description: creature.Description,
			Stats:       creature.Stats,
			Weaknesses:  creature.Weaknesses,
			Abilities:   creature.Abilities,
		}, nil
	}
}

// LookupScenarioInput represents the MCP tool input for a scenario lookup.
type LookupScenarioInput struct {
	ScenarioID string `json:"scenario_id" jsonschema:"identifier for the scenario, e.g. missing_merchant"`
}

// LookupScenarioResult represents the MCP tool output for a scenario lookup.
type LookupScenarioResult struct {
	Found       bool     `json:"found" jsonschema:"whether the scenario exists"`
	ID          string   `json:"id,omitempty" jsonschema:"the scenario identifier"`
	Title       string   `json:"title,omitempty" jsonschema:"display title"`
	Hook        string   `json:"hook,omitempty" jsonschema:"how to introduce the scenario to players"`
	Details     string   `json:"details,omitempty" jsonschema:"background information for the game master"`
	Rewards     []string `json:"rewards,omitempty" jsonschema:"potential rewards"`
	Query       string   `json:"query,omitempty" jsonschema:"search term, when not found"`
	Suggestions []string `json:"suggestions,omitempty" jsonschema:"similar scenario ids, when not found"`
}

// LookupScenarioTool defines the MCP tool schema for scenario lookups.
func LookupScenarioTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lookup_scenario",
		Description: "Looks up a prepared adventure scenario: hook, background details, and rewards.",
	}
}

// LookupScenarioHandler executes a scenario lookup.
func LookupScenarioHandler(catalog *loresqlite.Store) mcp.ToolHandlerFor[LookupScenarioInput, LookupScenarioResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LookupScenarioInput) (*mcp.CallToolResult, LookupScenarioResult, error) {
		scenario, err := catalog.Scenario(ctx, lore.NormalizeKey(input.ScenarioID))
		if err != nil {
			suggestions, err := suggestOnMiss(ctx, err, input.ScenarioID, catalog.ScenarioKeys)
			if err != nil {
				return nil, LookupScenarioResult{}, err
			}
			return nil, LookupScenarioResult{Query: input.ScenarioID, Suggestions: suggestions}, nil
		}
		return nil, LookupScenarioResult{
			Found:   true,
			ID:      scenario.ID,
			Title:   scenario.Title,
			Hook:    scenario.Hook,
			Details: scenario.Details,
			Rewards: scenario.Rewards,
		}, nil
	}
}
