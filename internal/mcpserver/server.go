// Package mcpserver exposes the DungeonMind game-master tools over the
// Model Context Protocol: dice rolls, session and character management,
// party movement, and read-only lore lookups.
package mcpserver

import (
	characterservice "github.com/greywick/dungeonmind/internal/character/service"
	loresqlite "github.com/greywick/dungeonmind/internal/lore/sqlite"
	"github.com/greywick/dungeonmind/internal/platform/branding"
	sessionservice "github.com/greywick/dungeonmind/internal/session/service"
	"github.com/greywick/dungeonmind/internal/world"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// Deps carries the services the tool handlers close over.
type Deps struct {
	Characters *characterservice.Service
	Sessions   *sessionservice.Manager
	World      *world.Graph
	Lore       *loresqlite.Store
}

// NewServer builds the MCP server with every DungeonMind tool registered.
func NewServer(deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{})

	mcp.AddTool(server, RollDiceTool(), RollDiceHandler())

	mcp.AddTool(server, CreateSessionTool(), CreateSessionHandler(deps.Sessions))
	mcp.AddTool(server, GetSessionStateTool(), GetSessionStateHandler(deps.Sessions))
	mcp.AddTool(server, JoinSessionTool(), JoinSessionHandler(deps.Sessions))
	mcp.AddTool(server, MoveCharacterTool(), MoveCharacterHandler(deps.Sessions))
	mcp.AddTool(server, GetCurrentMapTool(), GetCurrentMapHandler(deps.Sessions))

	mcp.AddTool(server, CreateCharacterTool(), CreateCharacterHandler(deps.Characters))
	mcp.AddTool(server, ReadCharacterTool(), ReadCharacterHandler(deps.Characters))
	mcp.AddTool(server, UpdateCharacterTool(), UpdateCharacterHandler(deps.Characters))
	mcp.AddTool(server, MovePartyMemberTool(), MovePartyMemberHandler(deps.Characters))

	mcp.AddTool(server, LookupGeographyTool(), LookupGeographyHandler(deps.Lore))
	mcp.AddTool(server, LookupNPCTool(), LookupNPCHandler(deps.Lore))
	mcp.AddTool(server, LookupCreatureTool(), LookupCreatureHandler(deps.Lore))
	mcp.AddTool(server, LookupScenarioTool(), LookupScenarioHandler(deps.Lore))

	return server
}

// LocationResult describes one map location in tool outputs.
type LocationResult struct {
	ID          string            `json:"id" jsonschema:"location identifier"`
	Name        string            `json:"name" jsonschema:"display name of the location"`
	Description string            `json:"description" jsonschema:"narrative description of the location"`
	Exits       map[string]string `json:"exits" jsonschema:"map of direction to destination location id"`
}

func locationResult(location world.Location) LocationResult {
	exits := make(map[string]string, len(location.Exits))
	for direction, destination := range location.Exits {
		exits[direction] = destination
	}
	return LocationResult{
		ID:          location.ID,
		Name:        location.Name,
		Description: location.Description,
		Exits:       exits,
	}
}
