// Package seed ships the starter Willowdale lore dataset and loads it into
// an empty catalog on first boot.
package seed

import (
	"context"
	"fmt"

	"github.com/greywick/dungeonmind/internal/lore"
	loresqlite "github.com/greywick/dungeonmind/internal/lore/sqlite"
)

// Regions returns the starter geographic entries.
func Regions() []lore.Region {
	return []lore.Region{
		{
			Key:         "willowdale_village",
			Description: "A small farming village at the crossing of the north trade road and Miller Creek. A few hundred souls, one inn, one market, and a stone temple older than anyone remembers.",
			NotableFeatures: []string{
				"The Sleeping Giant inn",
				"market square with weekly trade fair",
				"stone temple of the Dawn Mother",
				"fortified north gate",
			},
			Connections: []string{"darkwood_forest", "trade_road", "miller_creek"},
		},
		{
			Key:         "darkwood_forest",
			Description: "Dense old-growth forest north of the village. The canopy blocks most daylight and the paths shift after storms. Locals do not travel it after dusk.",
			NotableFeatures: []string{
				"overgrown shrine deep in the woods",
				"wolf dens along the western ridge",
				"the Hollow Oak waymarker",
			},
			Connections: []string{"willowdale_village", "old_ruins"},
		},
		{
			Key:         "miller_creek",
			Description: "A shallow creek that powers the village mill before winding east through the farmland. Safe to ford in summer, treacherous after spring rains.",
			NotableFeatures: []string{
				"the old millhouse",
				"stepping-stone ford",
			},
			Connections: []string{"willowdale_village", "trade_road"},
		},
		{
			Key:         "old_ruins",
			Description: "Collapsed towers of a pre-kingdom keep, half swallowed by the Darkwood. Treasure hunters go in; fewer come out with anything but stories.",
			NotableFeatures: []string{
				"sunken great hall",
				"sealed lower vaults",
				"scorch marks no rain washes away",
			},
			Connections: []string{"darkwood_forest"},
		},
		{
			Key:         "trade_road",
			Description: "The king's road running south to the river towns. Merchant caravans pass weekly in good season, escorted since the spring banditry began.",
			NotableFeatures: []string{
				"mile markers from the old kingdom",
				"the Wayside shrine",
			},
			Connections: []string{"willowdale_village", "miller_creek"},
		},
	}
}

// NPCs returns the starter cast of characters.
func NPCs() []lore.NPC {
	return []lore.NPC{
		{
			Key:         "marta_innkeeper",
			Name:        "Marta",
			Role:        "Innkeeper of the Sleeping Giant",
			Description: "A broad-shouldered woman in her fifties with flour on her apron and a ledger in her head.",
			Personality: "Warm but shrewd. Extends credit exactly once.",
			KnowsAbout:  []string{"village gossip", "travelers on the trade road", "the missing merchant"},
		},
		{
			Key:         "elder_morris",
			Name:        "Elder Morris",
			Role:        "Village elder",
			Description: "Thin, white-bearded, walks with a blackthorn cane he does not need.",
			Personality: "Deliberate and cautious. Speaks last in any argument and usually wins it.",
			KnowsAbout:  []string{"village history", "the old ruins", "the temple's founding"},
		},
		{
			Key:         "garrick_blacksmith",
			Name:        "Garrick",
			Role:        "Blacksmith",
			Description: "A young smith with burn-scarred forearms, inherited the forge from his late father.",
			Personality: "Quiet, honest, overcharges nobody.",
			KnowsAbout:  []string{"weapons and armor", "wolf attacks on the herds", "iron shipments gone missing"},
		},
		{
			Key:         "tilda_merchant",
			Name:        "Tilda",
			Role:        "Traveling merchant",
			Description: "A wiry trader with a mule cart of oddments, in town between caravan runs.",
			Personality: "Talkative and superstitious. Trades information as readily as goods.",
			KnowsAbout:  []string{"the trade road", "bandit sightings", "prices in the river towns"},
		},
		{
			Key:         "brother_aldwin",
			Name:        "Brother Aldwin",
			Role:        "Keeper of the temple",
			Description: "A soft-spoken monk who tends the Dawn Mother's temple alone since the last keeper died.",
			Personality: "Gentle, sleepless, troubled by something he will not name.",
			KnowsAbout:  []string{"temple rites", "the sealed crypt", "strange lights in the Darkwood"},
		},
	}
}

// Creatures returns the starter bestiary.
func Creatures() []lore.Creature {
	return []lore.Creature{
		{
			Key:         "wolf",
			Type:        "wolf",
			Description: "Gray-pelted pack hunter of the Darkwood. Rarely attacks armed groups unless starving or driven.",
			Stats:       lore.CreatureStats{HP: 11, Armor: 12, Attack: 4},
			Weaknesses:  []string{"fire", "isolation from the pack"},
			Abilities:   []string{"pack tactics", "keen hearing and smell"},
		},
		{
			Key:         "goblin",
			Type:        "goblin",
			Description: "Small, vicious scavenger. Goblin bands lair in the old ruins and raid farms at night.",
			Stats:       lore.CreatureStats{HP: 7, Armor: 13, Attack: 3},
			Weaknesses:  []string{"bright light", "cowardice when outnumbered"},
			Abilities:   []string{"nimble escape", "ambush from darkness"},
		},
		{
			Key:         "skeleton",
			Type:        "skeleton",
			Description: "Animated bones stirred by whatever sleeps under the ruins. Feels no pain and no fear.",
			Stats:       lore.CreatureStats{HP: 13, Armor: 13, Attack: 5},
			Weaknesses:  []string{"bludgeoning weapons", "holy water"},
			Abilities:   []string{"immune to poison", "fights until destroyed"},
		},
		{
			Key:         "forest_spider",
			Type:        "forest_spider",
			Description: "A dog-sized spider that webs the game trails of the Darkwood's deep interior.",
			Stats:       lore.CreatureStats{HP: 9, Armor: 12, Attack: 4},
			Weaknesses:  []string{"fire", "open ground"},
			Abilities:   []string{"venomous bite", "web snare"},
		},
		{
			Key:         "bandit",
			Type:        "bandit",
			Description: "Deserters and desperate folk preying on the trade road. Better armed than they should be.",
			Stats:       lore.CreatureStats{HP: 11, Armor: 12, Attack: 4},
			Weaknesses:  []string{"poor discipline", "will flee a losing fight"},
			Abilities:   []string{"ambush", "ransom prisoners"},
		},
	}
}

// Scenarios returns the starter adventure hooks.
func Scenarios() []lore.Scenario {
	return []lore.Scenario{
		{
			ID:      "missing_merchant",
			Title:   "The Missing Merchant",
			Hook:    "Marta mentions a wine merchant who took a room a week ago, left for the ruins with a hired guard, and never came back. His mule wandered home alone.",
			Details: "The merchant followed a treasure map bought from Tilda. His guard sold him out to the goblin band in the ruins; the merchant is alive, held for ransom in the sunken great hall.",
			Rewards: []string{"50 gold from the merchant's guild", "the merchant's gratitude and trade discounts", "the forged treasure map"},
		},
		{
			ID:      "wolf_attacks",
			Title:   "Wolves at the Folds",
			Hook:    "Garrick's cousin lost three sheep in two nights. The wolves are coming closer to the village than anyone can remember.",
			Details: "A forest spider colony has spread across the western ridge, driving the wolf packs out of their dens and toward the farms. Killing wolves treats the symptom; clearing the ridge treats the cause.",
			Rewards: []string{"20 gold pooled by the farmers", "a wolfskin cloak", "standing with the village"},
		},
		{
			ID:      "ruins_expedition",
			Title:   "Vaults of the Old Keep",
			Hook:    "Elder Morris quietly offers a commission: map the lower vaults of the old ruins before the next treasure-hunting party dies trying.",
			Details: "The sealed vaults hold the crypt of the keep's last lord. The seal is weakening and skeletons have begun to walk the upper halls. Morris suspects the temple's founding records name what was sealed there.",
			Rewards: []string{"75 gold from the village coffers", "first pick of recovered relics", "Elder Morris's trust"},
		},
		{
			ID:      "temple_shadows",
			Title:   "Shadows in the Temple",
			Hook:    "Brother Aldwin has stopped sleeping. Candles gutter in the crypt stair at midnight, and he is too afraid to look alone.",
			Details: "The crypt under the temple shares a wall with the ruins' vault system. Something is scraping through. Aldwin's founding records reveal the temple was built as a ward, not a chapel.",
			Rewards: []string{"the temple's blessing", "a vial of consecrated water", "Aldwin's founding records"},
		},
	}
}

// Load populates an empty catalog with the starter dataset. A catalog that
// already holds entries is left untouched.
func Load(ctx context.Context, store *loresqlite.Store) error {
	empty, err := store.Empty(ctx)
	if err != nil {
		return fmt.Errorf("check lore catalog: %w", err)
	}
	if !empty {
		return nil
	}

	for _, region := range Regions() {
		if err := store.PutRegion(ctx, region); err != nil {
			return fmt.Errorf("seed region %s: %w", region.Key, err)
		}
	}
	for _, npc := range NPCs() {
		if err := store.PutNPC(ctx, npc); err != nil {
			return fmt.Errorf("seed npc %s: %w", npc.Key, err)
		}
	}
	for _, creature := range Creatures() {
		if err := store.PutCreature(ctx, creature); err != nil {
			return fmt.Errorf("seed creature %s: %w", creature.Key, err)
		}
	}
	for _, scenario := range Scenarios() {
		if err := store.PutScenario(ctx, scenario); err != nil {
			return fmt.Errorf("seed scenario %s: %w", scenario.ID, err)
		}
	}
	return nil
}
