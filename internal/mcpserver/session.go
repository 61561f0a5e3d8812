package mcpserver

import (
	"context"
	"fmt"
	"time"

	sessionservice "github.com/greywick/dungeonmind/internal/session/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateSessionInput represents the MCP tool input for creating a session.
type CreateSessionInput struct{}

// CreateSessionResult represents the MCP tool output for creating a session.
type CreateSessionResult struct {
	SessionID string         `json:"session_id" jsonschema:"server-allocated session identifier"`
	CreatedAt string         `json:"created_at" jsonschema:"RFC3339 timestamp when the session was created"`
	Location  LocationResult `json:"location" jsonschema:"starting location of the party"`
}

// CreateSessionTool defines the MCP tool schema for creating a session.
func CreateSessionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_session",
		Description: "Starts a new game session with an empty party at the world's starting location.",
	}
}

// CreateSessionHandler executes a session creation request.
func CreateSessionHandler(sessions *sessionservice.Manager) mcp.ToolHandlerFor[CreateSessionInput, CreateSessionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CreateSessionInput) (*mcp.CallToolResult, CreateSessionResult, error) {
		created, err := sessions.Create(ctx)
		if err != nil {
			return nil, CreateSessionResult{}, fmt.Errorf("create session: %w", err)
		}
		state, err := sessions.State(ctx, created.ID)
		if err != nil {
			return nil, CreateSessionResult{}, fmt.Errorf("load session state: %w", err)
		}
		return nil, CreateSessionResult{
			SessionID: created.ID,
			CreatedAt: created.CreatedAt.Format(time.RFC3339),
			Location:  locationResult(state.Location),
		}, nil
	}
}

// SessionCharacter summarizes one party member in session outputs.
type SessionCharacter struct {
	ID        string         `json:"id" jsonschema:"character identifier"`
	Name      string         `json:"name" jsonschema:"character name"`
	Stats     map[string]int `json:"stats" jsonschema:"character stats"`
	Inventory []string       `json:"inventory" jsonschema:"carried items"`
	Gold      int            `json:"gold" jsonschema:"gold on hand"`
	Location  string         `json:"location" jsonschema:"character's own location id"`
}

// GetSessionStateInput represents the MCP tool input for reading session state.
type GetSessionStateInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// GetSessionStateResult represents the MCP tool output for reading session state.
type GetSessionStateResult struct {
	SessionID  string             `json:"session_id" jsonschema:"session identifier"`
	CreatedAt  string             `json:"created_at" jsonschema:"RFC3339 timestamp when the session was created"`
	Location   LocationResult     `json:"location" jsonschema:"current party location"`
	Characters []SessionCharacter `json:"characters" jsonschema:"party members in join order"`
}

// GetSessionStateTool defines the MCP tool schema for reading session state.
func GetSessionStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_session_state",
		Description: "Returns a snapshot of a session: party location and every member's sheet.",
	}
}

// GetSessionStateHandler executes a session state request.
func GetSessionStateHandler(sessions *sessionservice.Manager) mcp.ToolHandlerFor[GetSessionStateInput, GetSessionStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetSessionStateInput) (*mcp.CallToolResult, GetSessionStateResult, error) {
		state, err := sessions.State(ctx, input.SessionID)
		if err != nil {
			return nil, GetSessionStateResult{}, err
		}

		result := GetSessionStateResult{
			SessionID:  state.Session.ID,
			CreatedAt:  state.Session.CreatedAt.Format(time.RFC3339),
			Location:   locationResult(state.Location),
			Characters: make([]SessionCharacter, 0, len(state.Characters)),
		}
		for _, member := range state.Characters {
			result.Characters = append(result.Characters, SessionCharacter{
				ID:        member.ID,
				Name:      member.Name,
				Stats:     member.Stats,
				Inventory: member.Inventory,
				Gold:      member.Gold,
				Location:  member.Location,
			})
		}
		return nil, result, nil
	}
}

// JoinSessionInput represents the MCP tool input for joining a session.
type JoinSessionInput struct {
	SessionID   string `json:"session_id" jsonschema:"session identifier"`
	CharacterID string `json:"character_id" jsonschema:"character identifier"`
}

// JoinSessionResult represents the MCP tool output for joining a session.
type JoinSessionResult struct {
	SessionID    string   `json:"session_id" jsonschema:"session identifier"`
	CharacterIDs []string `json:"character_ids" jsonschema:"party member ids in join order"`
}

// JoinSessionTool defines the MCP tool schema for joining a session.
func JoinSessionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "join_session",
		Description: "Adds an existing character to a session's party. Joining twice is a no-op.",
	}
}

// JoinSessionHandler executes a join request.
func JoinSessionHandler(sessions *sessionservice.Manager) mcp.ToolHandlerFor[JoinSessionInput, JoinSessionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input JoinSessionInput) (*mcp.CallToolResult, JoinSessionResult, error) {
		joined, err := sessions.Join(ctx, input.SessionID, input.CharacterID)
		if err != nil {
			return nil, JoinSessionResult{}, err
		}
		return nil, JoinSessionResult{
			SessionID:    joined.ID,
			CharacterIDs: joined.CharacterIDs,
		}, nil
	}
}

// MoveCharacterInput represents the MCP tool input for moving the party.
type MoveCharacterInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Direction string `json:"direction" jsonschema:"direction to move, e.g. north"`
}

// MoveCharacterResult represents the MCP tool output for moving the party.
type MoveCharacterResult struct {
	SessionID string         `json:"session_id" jsonschema:"session identifier"`
	Location  LocationResult `json:"location" jsonschema:"location after the move"`
}

// MoveCharacterTool defines the MCP tool schema for moving the party.
func MoveCharacterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "move_character",
		Description: "Moves the session's party one location in the given direction.",
	}
}

// MoveCharacterHandler executes a party move request.
func MoveCharacterHandler(sessions *sessionservice.Manager) mcp.ToolHandlerFor[MoveCharacterInput, MoveCharacterResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MoveCharacterInput) (*mcp.CallToolResult, MoveCharacterResult, error) {
		destination, err := sessions.Move(ctx, input.SessionID, input.Direction)
		if err != nil {
			return nil, MoveCharacterResult{}, err
		}
		return nil, MoveCharacterResult{
			SessionID: input.SessionID,
			Location:  locationResult(destination),
		}, nil
	}
}

// GetCurrentMapInput represents the MCP tool input for describing the
// party's surroundings.
type GetCurrentMapInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// GetCurrentMapResult represents the MCP tool output for describing the
// party's surroundings.
type GetCurrentMapResult struct {
	Location   LocationResult `json:"location" jsonschema:"current party location"`
	Directions []string       `json:"directions" jsonschema:"valid exit directions, sorted"`
}

// GetCurrentMapTool defines the MCP tool schema for describing surroundings.
func GetCurrentMapTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_current_map",
		Description: "Describes the party's current location and its exits without moving.",
	}
}

// GetCurrentMapHandler executes a current-map request.
func GetCurrentMapHandler(sessions *sessionservice.Manager) mcp.ToolHandlerFor[GetCurrentMapInput, GetCurrentMapResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetCurrentMapInput) (*mcp.CallToolResult, GetCurrentMapResult, error) {
		location, directions, err := sessions.Describe(ctx, input.SessionID)
		if err != nil {
			return nil, GetCurrentMapResult{}, err
		}
		return nil, GetCurrentMapResult{
			Location:   locationResult(location),
			Directions: directions,
		}, nil
	}
}

