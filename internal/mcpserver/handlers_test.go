package mcpserver

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	characterservice "github.com/greywick/dungeonmind/internal/character/service"
	"github.com/greywick/dungeonmind/internal/lore/seed"
	loresqlite "github.com/greywick/dungeonmind/internal/lore/sqlite"
	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
	sessionservice "github.com/greywick/dungeonmind/internal/session/service"
	"github.com/greywick/dungeonmind/internal/storage/memory"
	"github.com/greywick/dungeonmind/internal/world"
)

func int64Ptr(v int64) *int64 { return &v }

func newTestDeps(t *testing.T) Deps {
	t.Helper()

	graph, err := world.Willowdale("")
	if err != nil {
		t.Fatalf("load willowdale map: %v", err)
	}

	catalog, err := loresqlite.Open(filepath.Join(t.TempDir(), "lore.db"))
	if err != nil {
		t.Fatalf("open lore store: %v", err)
	}
	t.Cleanup(func() { _ = catalog.Close() })
	if err := seed.Load(context.Background(), catalog); err != nil {
		t.Fatalf("seed lore store: %v", err)
	}

	characterStore := memory.NewCharacterStore()
	return Deps{
		Characters: characterservice.New(characterStore, graph),
		Sessions:   sessionservice.New(memory.NewSessionStore(), characterStore, graph),
		World:      graph,
		Lore:       catalog,
	}
}

func TestRollDiceDeterministicWithClientSeed(t *testing.T) {
	ctx := context.Background()
	handler := RollDiceHandler()

	input := RollDiceInput{Notation: "2d6+1d4-2", Rng: &RngRequest{Seed: int64Ptr(42)}}
	_, first, err := handler(ctx, nil, input)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	_, second, err := handler(ctx, nil, input)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}

	if first.Total != second.Total || !reflect.DeepEqual(first.Rolls, second.Rolls) {
		t.Fatalf("same seed produced different results: %+v vs %+v", first, second)
	}
	if first.Rng.SeedSource != "CLIENT" || first.Rng.SeedUsed != 42 {
		t.Fatalf("rng = %+v, want client seed 42", first.Rng)
	}
	if len(first.Rolls) != 3 {
		t.Fatalf("rolled %d faces, want 3", len(first.Rolls))
	}
	if first.Modifier != -2 {
		t.Fatalf("modifier = %d, want -2", first.Modifier)
	}
}

func TestRollDiceServerSeed(t *testing.T) {
	_, result, err := RollDiceHandler()(context.Background(), nil, RollDiceInput{Notation: "1d20"})
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Rng.SeedSource != "SERVER" {
		t.Fatalf("seed source = %q, want SERVER", result.Rng.SeedSource)
	}
	if result.Total < 1 || result.Total > 20 {
		t.Fatalf("total = %d out of d20 range", result.Total)
	}
}

func TestRollDiceInvalidNotation(t *testing.T) {
	_, _, err := RollDiceHandler()(context.Background(), nil, RollDiceInput{Notation: "2d6+xyz"})
	if apperrors.CodeOf(err) != apperrors.CodeInvalidNotation {
		t.Fatalf("error = %v, want INVALID_NOTATION", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, created, err := CreateSessionHandler(deps.Sessions)(ctx, nil, CreateSessionInput{})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if created.Location.ID != "tavern" {
		t.Fatalf("starting location = %q, want tavern", created.Location.ID)
	}

	_, sheet, err := CreateCharacterHandler(deps.Characters)(ctx, nil, CreateCharacterInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}
	if sheet.Character.Stats["hp"] != 20 {
		t.Fatalf("default hp = %d, want 20", sheet.Character.Stats["hp"])
	}

	_, joined, err := JoinSessionHandler(deps.Sessions)(ctx, nil, JoinSessionInput{
		SessionID:   created.SessionID,
		CharacterID: sheet.Character.ID,
	})
	if err != nil {
		t.Fatalf("join session: %v", err)
	}
	if !reflect.DeepEqual(joined.CharacterIDs, []string{sheet.Character.ID}) {
		t.Fatalf("character ids = %v", joined.CharacterIDs)
	}

	_, moved, err := MoveCharacterHandler(deps.Sessions)(ctx, nil, MoveCharacterInput{
		SessionID: created.SessionID,
		Direction: "north",
	})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Location.ID != "market" {
		t.Fatalf("moved to %q, want market", moved.Location.ID)
	}

	_, state, err := GetSessionStateHandler(deps.Sessions)(ctx, nil, GetSessionStateInput{SessionID: created.SessionID})
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if state.Location.ID != "market" {
		t.Fatalf("state location = %q, want market", state.Location.ID)
	}
	if len(state.Characters) != 1 || state.Characters[0].Name != "Mira" {
		t.Fatalf("party = %+v", state.Characters)
	}

	_, current, err := GetCurrentMapHandler(deps.Sessions)(ctx, nil, GetCurrentMapInput{SessionID: created.SessionID})
	if err != nil {
		t.Fatalf("current map: %v", err)
	}
	if current.Location.ID != "market" {
		t.Fatalf("current map location = %q, want market", current.Location.ID)
	}
	if len(current.Directions) == 0 {
		t.Fatal("expected exit directions from the market")
	}
}

func TestMoveInvalidDirectionFails(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, created, err := CreateSessionHandler(deps.Sessions)(ctx, nil, CreateSessionInput{})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	_, _, err = MoveCharacterHandler(deps.Sessions)(ctx, nil, MoveCharacterInput{
		SessionID: created.SessionID,
		Direction: "down",
	})
	if apperrors.CodeOf(err) != apperrors.CodeInvalidMove {
		t.Fatalf("error = %v, want INVALID_MOVE", err)
	}

	_, state, err := GetSessionStateHandler(deps.Sessions)(ctx, nil, GetSessionStateInput{SessionID: created.SessionID})
	if err != nil {
		t.Fatalf("session state: %v", err)
	}
	if state.Location.ID != "tavern" {
		t.Fatalf("location = %q after failed move, want tavern", state.Location.ID)
	}
}

func TestUpdateCharacterPatch(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, created, err := CreateCharacterHandler(deps.Characters)(ctx, nil, CreateCharacterInput{Name: "Bren"})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}

	goldDelta := -5
	_, updated, err := UpdateCharacterHandler(deps.Characters)(ctx, nil, UpdateCharacterInput{
		CharacterID: created.Character.ID,
		AdjustStats: map[string]int{"hp": -4},
		AddItems:    []string{"healing potion"},
		GoldDelta:   &goldDelta,
	})
	if err != nil {
		t.Fatalf("update character: %v", err)
	}
	if updated.Character.Stats["hp"] != 16 {
		t.Fatalf("hp = %d, want 16", updated.Character.Stats["hp"])
	}
	if updated.Character.Gold != 10 {
		t.Fatalf("gold = %d, want 10", updated.Character.Gold)
	}

	ruinous := -1000
	_, _, err = UpdateCharacterHandler(deps.Characters)(ctx, nil, UpdateCharacterInput{
		CharacterID: created.Character.ID,
		GoldDelta:   &ruinous,
	})
	if apperrors.CodeOf(err) != apperrors.CodeInvalidPatch {
		t.Fatalf("error = %v, want INVALID_PATCH", err)
	}

	_, after, err := ReadCharacterHandler(deps.Characters)(ctx, nil, ReadCharacterInput{CharacterID: created.Character.ID})
	if err != nil {
		t.Fatalf("read character: %v", err)
	}
	if after.Character.Gold != 10 {
		t.Fatalf("gold = %d after rejected patch, want 10", after.Character.Gold)
	}
}

func TestMovePartyMemberIndependentOfSession(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	_, created, err := CreateCharacterHandler(deps.Characters)(ctx, nil, CreateCharacterInput{Name: "Scout"})
	if err != nil {
		t.Fatalf("create character: %v", err)
	}

	_, moved, err := MovePartyMemberHandler(deps.Characters)(ctx, nil, MovePartyMemberInput{
		CharacterID: created.Character.ID,
		Direction:   "north",
	})
	if err != nil {
		t.Fatalf("move party member: %v", err)
	}
	if moved.Location.ID != "market" {
		t.Fatalf("moved to %q, want market", moved.Location.ID)
	}
}

func TestLookupGeographyFound(t *testing.T) {
	deps := newTestDeps(t)

	_, result, err := LookupGeographyHandler(deps.Lore)(context.Background(), nil, LookupGeographyInput{Region: "Darkwood Forest"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !result.Found {
		t.Fatalf("result = %+v, want found", result)
	}
	if result.Region != "darkwood_forest" || result.Description == "" {
		t.Fatalf("region = %+v", result)
	}
}

func TestLookupGeographyMissSuggests(t *testing.T) {
	deps := newTestDeps(t)

	_, result, err := LookupGeographyHandler(deps.Lore)(context.Background(), nil, LookupGeographyInput{Region: "darkwood"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if result.Found {
		t.Fatalf("partial name should miss, got %+v", result)
	}
	if result.Query != "darkwood" {
		t.Fatalf("query = %q", result.Query)
	}
	foundSuggestion := false
	for _, suggestion := range result.Suggestions {
		if suggestion == "darkwood_forest" {
			foundSuggestion = true
		}
	}
	if !foundSuggestion {
		t.Fatalf("suggestions = %v, want darkwood_forest", result.Suggestions)
	}
}

func TestLookupNPCByDisplayName(t *testing.T) {
	deps := newTestDeps(t)

	_, result, err := LookupNPCHandler(deps.Lore)(context.Background(), nil, LookupNPCInput{Name: "Marta"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !result.Found || result.Name != "Marta" {
		t.Fatalf("result = %+v, want Marta found", result)
	}
	if result.Role == "" || len(result.KnowsAbout) == 0 {
		t.Fatalf("npc entry incomplete: %+v", result)
	}
}

func TestLookupCreature(t *testing.T) {
	deps := newTestDeps(t)

	_, result, err := LookupCreatureHandler(deps.Lore)(context.Background(), nil, LookupCreatureInput{CreatureType: "wolf"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !result.Found || result.Stats.HP == 0 {
		t.Fatalf("result = %+v, want wolf with stats", result)
	}
}

func TestLookupScenarioMissSuggests(t *testing.T) {
	deps := newTestDeps(t)

	_, result, err := LookupScenarioHandler(deps.Lore)(context.Background(), nil, LookupScenarioInput{ScenarioID: "merchant"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if result.Found {
		t.Fatalf("result = %+v, want miss", result)
	}
	if len(result.Suggestions) == 0 {
		t.Fatal("expected suggestions for partial scenario id")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	deps := newTestDeps(t)
	if server := NewServer(deps); server == nil {
		t.Fatal("expected configured server")
	}
}
