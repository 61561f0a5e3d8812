package character

import (
	"testing"

	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
)

func intPtr(v int) *int { return &v }

func TestApplyPatchSetAndAdjustStats(t *testing.T) {
	sheet := DefaultSheet("Aria")
	sheet.ID = "char-1"

	updated, err := ApplyPatch(sheet, Patch{
		SetStats:    map[string]int{"wisdom": 12},
		AdjustStats: map[string]int{"hp": -5, "luck": 3},
	})
	if err != nil {
		t.Fatalf("apply patch: %v", err)
	}
	if updated.Stats["wisdom"] != 12 {
		t.Fatalf("expected wisdom 12, got %d", updated.Stats["wisdom"])
	}
	if updated.Stats["hp"] != 15 {
		t.Fatalf("expected hp 15, got %d", updated.Stats["hp"])
	}
	// Stats are an open set; unknown names start from zero.
	if updated.Stats["luck"] != 3 {
		t.Fatalf("expected luck 3, got %d", updated.Stats["luck"])
	}
}

func TestApplyPatchClampsStatToMax(t *testing.T) {
	sheet := DefaultSheet("Aria")

	updated, err := ApplyPatch(sheet, Patch{AdjustStats: map[string]int{"hp": 50}})
	if err != nil {
		t.Fatalf("apply patch: %v", err)
	}
	if updated.Stats["hp"] != updated.Stats["max_hp"] {
		t.Fatalf("expected hp clamped to %d, got %d", updated.Stats["max_hp"], updated.Stats["hp"])
	}
}

func TestApplyPatchInventory(t *testing.T) {
	sheet := Character{Name: "Aria", Inventory: []string{"torch", "rope", "torch"}}

	updated, err := ApplyPatch(sheet, Patch{
		AddItems:    []string{"lantern"},
		RemoveItems: []string{"torch"},
	})
	if err != nil {
		t.Fatalf("apply patch: %v", err)
	}
	want := []string{"rope", "torch", "lantern"}
	if len(updated.Inventory) != len(want) {
		t.Fatalf("expected inventory %v, got %v", want, updated.Inventory)
	}
	for i := range want {
		if updated.Inventory[i] != want[i] {
			t.Fatalf("expected inventory %v, got %v", want, updated.Inventory)
		}
	}
}

func TestApplyPatchRemoveMissingItemFails(t *testing.T) {
	sheet := Character{Name: "Aria", Inventory: []string{"torch"}}

	_, err := ApplyPatch(sheet, Patch{RemoveItems: []string{"rope"}})
	if apperrors.CodeOf(err) != apperrors.CodeInvalidPatch {
		t.Fatalf("expected INVALID_PATCH, got %v", err)
	}
}

func TestApplyPatchGold(t *testing.T) {
	sheet := Character{Name: "Aria", Gold: 15}

	updated, err := ApplyPatch(sheet, Patch{GoldDelta: intPtr(-5)})
	if err != nil {
		t.Fatalf("apply patch: %v", err)
	}
	if updated.Gold != 10 {
		t.Fatalf("expected gold 10, got %d", updated.Gold)
	}

	updated, err = ApplyPatch(sheet, Patch{SetGold: intPtr(100)})
	if err != nil {
		t.Fatalf("apply patch: %v", err)
	}
	if updated.Gold != 100 {
		t.Fatalf("expected gold 100, got %d", updated.Gold)
	}
}

func TestApplyPatchNegativeGoldFails(t *testing.T) {
	sheet := Character{Name: "Aria", Gold: 3}

	if _, err := ApplyPatch(sheet, Patch{GoldDelta: intPtr(-10)}); apperrors.CodeOf(err) != apperrors.CodeInvalidPatch {
		t.Fatalf("expected INVALID_PATCH for delta, got %v", err)
	}
	if _, err := ApplyPatch(sheet, Patch{SetGold: intPtr(-1)}); apperrors.CodeOf(err) != apperrors.CodeInvalidPatch {
		t.Fatalf("expected INVALID_PATCH for set, got %v", err)
	}
}

func TestApplyPatchIsAtomicAndNonMutating(t *testing.T) {
	sheet := Character{
		Name:      "Aria",
		Stats:     map[string]int{"hp": 10},
		Inventory: []string{"torch"},
		Gold:      5,
	}

	// A patch that adjusts stats and items but then fails on gold must
	// leave the input untouched and return nothing.
	result, err := ApplyPatch(sheet, Patch{
		AdjustStats: map[string]int{"hp": -2},
		AddItems:    []string{"rope"},
		GoldDelta:   intPtr(-10),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Name != "" {
		t.Fatalf("expected zero character on failure, got %+v", result)
	}
	if sheet.Stats["hp"] != 10 || len(sheet.Inventory) != 1 || sheet.Gold != 5 {
		t.Fatalf("input mutated: %+v", sheet)
	}
}

func TestApplyPatchLocation(t *testing.T) {
	sheet := Character{Name: "Aria", Location: "tavern"}
	market := "market"

	updated, err := ApplyPatch(sheet, Patch{Location: &market})
	if err != nil {
		t.Fatalf("apply patch: %v", err)
	}
	if updated.Location != "market" {
		t.Fatalf("expected market, got %s", updated.Location)
	}
}

func TestCloneIsDeep(t *testing.T) {
	sheet := Character{Name: "Aria", Stats: map[string]int{"hp": 10}, Inventory: []string{"torch"}}
	cloned := sheet.Clone()

	cloned.Stats["hp"] = 1
	cloned.Inventory[0] = "rope"

	if sheet.Stats["hp"] != 10 || sheet.Inventory[0] != "torch" {
		t.Fatalf("clone aliases original: %+v", sheet)
	}
}

func TestValidateRequiresName(t *testing.T) {
	if err := Validate(Character{Name: "  "}); err == nil {
		t.Fatal("expected error")
	}
	if err := Validate(DefaultSheet("Aria")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
