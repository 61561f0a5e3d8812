package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/greywick/dungeonmind/internal/character"
	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
	"github.com/greywick/dungeonmind/internal/storage/memory"
	"github.com/greywick/dungeonmind/internal/world"
)

func intPtr(v int) *int { return &v }

func testGraph(t *testing.T) *world.Graph {
	t.Helper()
	graph, err := world.New([]world.Location{
		{ID: "tavern", Name: "Tavern", Exits: map[string]string{"north": "market"}},
		{ID: "market", Name: "Market", Exits: map[string]string{"south": "tavern"}},
	}, "tavern")
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return graph
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(memory.NewCharacterStore(), testGraph(t))
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Location != "tavern" {
		t.Fatalf("location = %q, want tavern", created.Location)
	}
	if created.Stats["hp"] != 20 || created.Stats["max_hp"] != 20 {
		t.Fatalf("unexpected default hp stats: %v", created.Stats)
	}
	if created.Gold != 15 {
		t.Fatalf("gold = %d, want 15", created.Gold)
	}

	stored, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Mira" {
		t.Fatalf("stored name = %q", stored.Name)
	}
}

func TestCreateCallerID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{ID: "hero-1", Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "hero-1" {
		t.Fatalf("id = %q, want hero-1", created.ID)
	}

	_, err = svc.Create(ctx, CreateInput{ID: "hero-1", Name: "Other"})
	if apperrors.CodeOf(err) != apperrors.CodeDuplicateID {
		t.Fatalf("duplicate create error = %v, want DUPLICATE_ID", err)
	}
}

func TestCreateOverrides(t *testing.T) {
	svc := newTestService(t)
	gold := 3

	created, err := svc.Create(context.Background(), CreateInput{
		Name:      "Bren",
		Stats:     map[string]int{"hp": 8, "max_hp": 8},
		Inventory: []string{"lute"},
		Gold:      &gold,
		Location:  "market",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Stats["hp"] != 8 {
		t.Fatalf("hp = %d, want 8", created.Stats["hp"])
	}
	if len(created.Inventory) != 1 || created.Inventory[0] != "lute" {
		t.Fatalf("inventory = %v", created.Inventory)
	}
	if created.Gold != 3 {
		t.Fatalf("gold = %d, want 3", created.Gold)
	}
	if created.Location != "market" {
		t.Fatalf("location = %q, want market", created.Location)
	}
}

func TestCreateUnknownLocation(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), CreateInput{Name: "Mira", Location: "moon"})
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestCreateInvalidSheet(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Create(context.Background(), CreateInput{Name: ""})
	if err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestUpdateAppliesPatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, character.Patch{
		AdjustStats: map[string]int{"hp": -5},
		GoldDelta:   intPtr(10),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stats["hp"] != 15 {
		t.Fatalf("hp = %d, want 15", updated.Stats["hp"])
	}
	if updated.Gold != 25 {
		t.Fatalf("gold = %d, want 25", updated.Gold)
	}

	stored, _ := svc.Get(ctx, created.ID)
	if stored.Stats["hp"] != 15 {
		t.Fatalf("stored hp = %d, want 15", stored.Stats["hp"])
	}
}

func TestUpdateUnknownLocationRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bad := "moon"
	_, err = svc.Update(ctx, created.ID, character.Patch{Location: &bad, GoldDelta: intPtr(100)})
	if apperrors.CodeOf(err) != apperrors.CodeInvalidPatch {
		t.Fatalf("error = %v, want INVALID_PATCH", err)
	}

	stored, _ := svc.Get(ctx, created.ID)
	if stored.Gold != 15 || stored.Location != "tavern" {
		t.Fatalf("record changed after failed patch: gold=%d location=%q", stored.Gold, stored.Location)
	}
}

func TestUpdateFailedPatchLeavesRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, created.ID, character.Patch{GoldDelta: intPtr(-100)})
	if apperrors.CodeOf(err) != apperrors.CodeInvalidPatch {
		t.Fatalf("error = %v, want INVALID_PATCH", err)
	}
	if !strings.Contains(err.Error(), "insufficient gold") {
		t.Fatalf("error message = %q", err.Error())
	}

	stored, _ := svc.Get(ctx, created.ID)
	if stored.Gold != 15 {
		t.Fatalf("gold = %d after failed patch, want 15", stored.Gold)
	}
}

func TestUpdateMissingCharacter(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Update(context.Background(), "ghost", character.Patch{GoldDelta: intPtr(1)})
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestMove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dest, err := svc.Move(ctx, created.ID, "north")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if dest.ID != "market" {
		t.Fatalf("destination = %q, want market", dest.ID)
	}

	stored, _ := svc.Get(ctx, created.ID)
	if stored.Location != "market" {
		t.Fatalf("stored location = %q, want market", stored.Location)
	}
}

func TestMoveInvalidDirection(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Move(ctx, created.ID, "west")
	if apperrors.CodeOf(err) != apperrors.CodeInvalidMove {
		t.Fatalf("error = %v, want INVALID_MOVE", err)
	}

	stored, _ := svc.Get(ctx, created.ID)
	if stored.Location != "tavern" {
		t.Fatalf("location changed on failed move: %q", stored.Location)
	}
}

func TestConcurrentGoldAdjustments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created, err := svc.Create(ctx, CreateInput{Name: "Mira"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Update(ctx, created.ID, character.Patch{GoldDelta: intPtr(1)}); err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, _ := svc.Get(ctx, created.ID)
	if stored.Gold != 15+workers {
		t.Fatalf("gold = %d, want %d", stored.Gold, 15+workers)
	}
}
