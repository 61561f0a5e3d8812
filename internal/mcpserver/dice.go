package mcpserver

import (
	"context"

	"github.com/greywick/dungeonmind/internal/dice"
	"github.com/greywick/dungeonmind/internal/platform/random"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RngRequest configures the random source for a roll.
type RngRequest struct {
	Seed *int64 `json:"seed,omitempty" jsonschema:"optional seed for deterministic rolls"`
}

// RngResult reports the random source details used for a roll.
type RngResult struct {
	SeedUsed   int64  `json:"seed_used" jsonschema:"seed value used by the server"`
	SeedSource string `json:"seed_source" jsonschema:"seed source (CLIENT or SERVER)"`
}

// RollDiceInput represents the MCP tool input for rolling dice.
type RollDiceInput struct {
	Notation string      `json:"notation" jsonschema:"dice notation, e.g. 2d6+1d4-2"`
	Rng      *RngRequest `json:"rng,omitempty" jsonschema:"optional rng configuration"`
}

// RollDiceTermResult represents the results for a single dice term.
type RollDiceTermResult struct {
	Sides   int   `json:"sides" jsonschema:"number of sides for the dice in this term"`
	Sign    int   `json:"sign" jsonschema:"sign applied to this term's contribution (1 or -1)"`
	Results []int `json:"results" jsonschema:"unsigned face values in roll order"`
	Total   int   `json:"total" jsonschema:"unsigned sum of this term's face values"`
}

// RollDiceResult represents the MCP tool output for rolling dice.
type RollDiceResult struct {
	Notation string               `json:"notation" jsonschema:"notation as submitted"`
	Rolls    []int                `json:"rolls" jsonschema:"every face value rolled, in roll order"`
	Terms    []RollDiceTermResult `json:"terms" jsonschema:"per-term breakdown"`
	Modifier int                  `json:"modifier" jsonschema:"net constant modifier"`
	Total    int                  `json:"total" jsonschema:"signed grand total"`
	Rng      RngResult            `json:"rng" jsonschema:"rng details"`
}

// RollDiceTool defines the MCP tool schema for rolling dice.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls dice using standard tabletop notation such as 1d20, 3d6+2, or 2d6+1d4-1.",
	}
}

// RollDiceHandler executes a dice roll request.
func RollDiceHandler() mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		seedSource := "SERVER"
		var seed int64
		if input.Rng != nil && input.Rng.Seed != nil {
			seed = *input.Rng.Seed
			seedSource = "CLIENT"
		} else {
			drawn, err := random.NewSeed()
			if err != nil {
				return nil, RollDiceResult{}, err
			}
			seed = drawn
		}

		rolled, err := dice.Roll(input.Notation, seed)
		if err != nil {
			return nil, RollDiceResult{}, err
		}

		result := RollDiceResult{
			Notation: rolled.Notation,
			Rolls:    rolled.Faces(),
			Modifier: rolled.Modifier,
			Total:    rolled.Total,
			Rng:      RngResult{SeedUsed: seed, SeedSource: seedSource},
		}
		for _, term := range rolled.Rolls {
			result.Terms = append(result.Terms, RollDiceTermResult{
				Sides:   term.Sides,
				Sign:    term.Sign,
				Results: term.Results,
				Total:   term.Total,
			})
		}
		return nil, result, nil
	}
}
