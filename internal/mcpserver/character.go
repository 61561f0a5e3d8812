package mcpserver

import (
	"context"

	"github.com/greywick/dungeonmind/internal/character"
	characterservice "github.com/greywick/dungeonmind/internal/character/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CharacterSheet represents a character in tool outputs.
type CharacterSheet struct {
	ID        string         `json:"id" jsonschema:"character identifier"`
	Name      string         `json:"name" jsonschema:"character name"`
	Stats     map[string]int `json:"stats" jsonschema:"character stats, e.g. hp, strength"`
	Inventory []string       `json:"inventory" jsonschema:"carried items"`
	Gold      int            `json:"gold" jsonschema:"gold on hand"`
	Location  string         `json:"location" jsonschema:"current location id"`
}

func characterSheet(c character.Character) CharacterSheet {
	return CharacterSheet{
		ID:        c.ID,
		Name:      c.Name,
		Stats:     c.Stats,
		Inventory: c.Inventory,
		Gold:      c.Gold,
		Location:  c.Location,
	}
}

// CreateCharacterInput represents the MCP tool input for creating a character.
type CreateCharacterInput struct {
	ID        string         `json:"id,omitempty" jsonschema:"optional caller-chosen character identifier"`
	Name      string         `json:"name" jsonschema:"character name"`
	Stats     map[string]int `json:"stats,omitempty" jsonschema:"optional stats overriding the default sheet"`
	Inventory []string       `json:"inventory,omitempty" jsonschema:"optional starting inventory"`
	Gold      *int           `json:"gold,omitempty" jsonschema:"optional starting gold"`
	Location  string         `json:"location,omitempty" jsonschema:"optional starting location id, defaults to the world start"`
}

// CreateCharacterResult represents the MCP tool output for creating a character.
type CreateCharacterResult struct {
	Character CharacterSheet `json:"character" jsonschema:"the created character"`
}

// CreateCharacterTool defines the MCP tool schema for creating a character.
func CreateCharacterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_character",
		Description: "Creates a character. Omitted fields fall back to the default starting sheet.",
	}
}

// CreateCharacterHandler executes a character creation request.
func CreateCharacterHandler(characters *characterservice.Service) mcp.ToolHandlerFor[CreateCharacterInput, CreateCharacterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateCharacterInput) (*mcp.CallToolResult, CreateCharacterResult, error) {
		created, err := characters.Create(ctx, characterservice.CreateInput{
			ID:        input.ID,
			Name:      input.Name,
			Stats:     input.Stats,
			Inventory: input.Inventory,
			Gold:      input.Gold,
			Location:  input.Location,
		})
		if err != nil {
			return nil, CreateCharacterResult{}, err
		}
		return nil, CreateCharacterResult{Character: characterSheet(created)}, nil
	}
}

// ReadCharacterInput represents the MCP tool input for reading a character.
type ReadCharacterInput struct {
	CharacterID string `json:"character_id" jsonschema:"character identifier"`
}

// ReadCharacterResult represents the MCP tool output for reading a character.
type ReadCharacterResult struct {
	Character CharacterSheet `json:"character" jsonschema:"the character sheet"`
}

// ReadCharacterTool defines the MCP tool schema for reading a character.
func ReadCharacterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "read_character",
		Description: "Returns a character's full sheet.",
	}
}

// ReadCharacterHandler executes a character read request.
func ReadCharacterHandler(characters *characterservice.Service) mcp.ToolHandlerFor[ReadCharacterInput, ReadCharacterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReadCharacterInput) (*mcp.CallToolResult, ReadCharacterResult, error) {
		found, err := characters.Get(ctx, input.CharacterID)
		if err != nil {
			return nil, ReadCharacterResult{}, err
		}
		return nil, ReadCharacterResult{Character: characterSheet(found)}, nil
	}
}

// UpdateCharacterInput represents the MCP tool input for patching a character.
type UpdateCharacterInput struct {
	CharacterID string         `json:"character_id" jsonschema:"character identifier"`
	SetStats    map[string]int `json:"set_stats,omitempty" jsonschema:"stats to set to absolute values"`
	AdjustStats map[string]int `json:"adjust_stats,omitempty" jsonschema:"stats to adjust by signed deltas"`
	AddItems    []string       `json:"add_items,omitempty" jsonschema:"items to add to the inventory"`
	RemoveItems []string       `json:"remove_items,omitempty" jsonschema:"items to remove from the inventory"`
	GoldDelta   *int           `json:"gold_delta,omitempty" jsonschema:"signed gold adjustment"`
	SetGold     *int           `json:"set_gold,omitempty" jsonschema:"absolute gold value to set"`
	Location    *string        `json:"location,omitempty" jsonschema:"location id to place the character at"`
}

// UpdateCharacterResult represents the MCP tool output for patching a character.
type UpdateCharacterResult struct {
	Character CharacterSheet `json:"character" jsonschema:"the character after the patch"`
}

// UpdateCharacterTool defines the MCP tool schema for patching a character.
func UpdateCharacterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_character",
		Description: "Applies a patch to a character atomically. A rejected patch changes nothing.",
	}
}

// UpdateCharacterHandler executes a character patch request.
func UpdateCharacterHandler(characters *characterservice.Service) mcp.ToolHandlerFor[UpdateCharacterInput, UpdateCharacterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateCharacterInput) (*mcp.CallToolResult, UpdateCharacterResult, error) {
		updated, err := characters.Update(ctx, input.CharacterID, character.Patch{
			SetStats:    input.SetStats,
			AdjustStats: input.AdjustStats,
			AddItems:    input.AddItems,
			RemoveItems: input.RemoveItems,
			GoldDelta:   input.GoldDelta,
			SetGold:     input.SetGold,
			Location:    input.Location,
		})
		if err != nil {
			return nil, UpdateCharacterResult{}, err
		}
		return nil, UpdateCharacterResult{Character: characterSheet(updated)}, nil
	}
}

// MovePartyMemberInput represents the MCP tool input for moving one character.
type MovePartyMemberInput struct {
	CharacterID string `json:"character_id" jsonschema:"character identifier"`
	Direction   string `json:"direction" jsonschema:"direction to move, e.g. north"`
}

// MovePartyMemberResult represents the MCP tool output for moving one character.
type MovePartyMemberResult struct {
	CharacterID string         `json:"character_id" jsonschema:"character identifier"`
	Location    LocationResult `json:"location" jsonschema:"location after the move"`
}

// MovePartyMemberTool defines the MCP tool schema for moving one character.
func MovePartyMemberTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "move_party_member",
		Description: "Moves a single character one location in the given direction, independent of any session.",
	}
}

// MovePartyMemberHandler executes a single-character move request.
func MovePartyMemberHandler(characters *characterservice.Service) mcp.ToolHandlerFor[MovePartyMemberInput, MovePartyMemberResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MovePartyMemberInput) (*mcp.CallToolResult, MovePartyMemberResult, error) {
		destination, err := characters.Move(ctx, input.CharacterID, input.Direction)
		if err != nil {
			return nil, MovePartyMemberResult{}, err
		}
		return nil, MovePartyMemberResult{
			CharacterID: input.CharacterID,
			Location:    locationResult(destination),
		}, nil
	}
}
