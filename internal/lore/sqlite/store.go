// Package sqlite provides the SQLite-backed lore catalog.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/greywick/dungeonmind/internal/lore"
	apperrors "github.com/greywick/dungeonmind/internal/platform/errors"
	sqlitemigrate "github.com/greywick/dungeonmind/internal/platform/storage/sqlitemigrate"

	"github.com/greywick/dungeonmind/internal/lore/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists the lore catalog in SQLite. String lists are stored as
// JSON arrays in TEXT columns.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite lore store and applies embedded migrations. The
// special path ":memory:" opens a transient in-memory catalog.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// In-memory databases are per-connection; a single connection keeps
		// the catalog alive across calls.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Empty reports whether the catalog holds no entries at all.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	var total int
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM regions)
		     + (SELECT COUNT(*) FROM npcs)
		     + (SELECT COUNT(*) FROM creatures)
		     + (SELECT COUNT(*) FROM scenarios)`)
	if err := row.Scan(&total); err != nil {
		return false, fmt.Errorf("count lore entries: %w", err)
	}
	return total == 0, nil
}

// PutRegion inserts or replaces one region entry.
func (s *Store) PutRegion(ctx context.Context, region lore.Region) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	key := lore.NormalizeKey(region.Key)
	if key == "" {
		return fmt.Errorf("region key is required")
	}
	features, err := encodeList(region.NotableFeatures)
	if err != nil {
		return fmt.Errorf("encode notable features: %w", err)
	}
	connections, err := encodeList(region.Connections)
	if err != nil {
		return fmt.Errorf("encode connections: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT OR REPLACE INTO regions (key, description, notable_features, connections)
		VALUES (?, ?, ?, ?)`,
		key, region.Description, features, connections,
	)
	if err != nil {
		return fmt.Errorf("put region: %w", err)
	}
	return nil
}

// Region returns the region stored under the given normalized key.
func (s *Store) Region(ctx context.Context, key string) (lore.Region, error) {
	if err := s.ready(ctx); err != nil {
		return lore.Region{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT key, description, notable_features, connections
		  FROM regions WHERE key = ?`, key)

	var region lore.Region
	var features, connections string
	if err := row.Scan(&region.Key, &region.Description, &features, &connections); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lore.Region{}, notFound("region", key)
		}
		return lore.Region{}, fmt.Errorf("get region: %w", err)
	}
	if err := decodeList(features, &region.NotableFeatures); err != nil {
		return lore.Region{}, fmt.Errorf("decode notable features: %w", err)
	}
	if err := decodeList(connections, &region.Connections); err != nil {
		return lore.Region{}, fmt.Errorf("decode connections: %w", err)
	}
	return region, nil
}

// RegionKeys lists every region key.
func (s *Store) RegionKeys(ctx context.Context) ([]string, error) {
	return s.listKeys(ctx, `SELECT key FROM regions ORDER BY key`)
}

// PutNPC inserts or replaces one NPC entry.
func (s *Store) PutNPC(ctx context.Context, npc lore.NPC) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	key := lore.NormalizeKey(npc.Key)
	if key == "" {
		return fmt.Errorf("npc key is required")
	}
	if strings.TrimSpace(npc.Name) == "" {
		return fmt.Errorf("npc name is required")
	}
	knows, err := encodeList(npc.KnowsAbout)
	if err != nil {
		return fmt.Errorf("encode knows about: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT OR REPLACE INTO npcs (key, name, role, description, personality, knows_about)
		VALUES (?, ?, ?, ?, ?, ?)`,
		key, npc.Name, npc.Role, npc.Description, npc.Personality, knows,
	)
	if err != nil {
		return fmt.Errorf("put npc: %w", err)
	}
	return nil
}

// NPC returns the NPC stored under the given key, falling back to a
// case-insensitive match on the display name.
func (s *Store) NPC(ctx context.Context, key string) (lore.NPC, error) {
	if err := s.ready(ctx); err != nil {
		return lore.NPC{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT key, name, role, description, personality, knows_about
		  FROM npcs WHERE key = ? OR lower(name) = ?
		 ORDER BY key = ? DESC LIMIT 1`,
		key, strings.ToLower(key), key)

	var npc lore.NPC
	var knows string
	if err := row.Scan(&npc.Key, &npc.Name, &npc.Role, &npc.Description, &npc.Personality, &knows); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lore.NPC{}, notFound("npc", key)
		}
		return lore.NPC{}, fmt.Errorf("get npc: %w", err)
	}
	if err := decodeList(knows, &npc.KnowsAbout); err != nil {
		return lore.NPC{}, fmt.Errorf("decode knows about: %w", err)
	}
	return npc, nil
}

// NPCNames lists every NPC key and display name, keys first.
func (s *Store) NPCNames(ctx context.Context) ([]string, error) {
	keys, err := s.listKeys(ctx, `SELECT key FROM npcs ORDER BY key`)
	if err != nil {
		return nil, err
	}
	names, err := s.listKeys(ctx, `SELECT name FROM npcs ORDER BY key`)
	if err != nil {
		return nil, err
	}
	return append(keys, names...), nil
}

// PutCreature inserts or replaces one creature entry.
func (s *Store) PutCreature(ctx context.Context, creature lore.Creature) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	key := lore.NormalizeKey(creature.Key)
	if key == "" {
		return fmt.Errorf("creature key is required")
	}
	weaknesses, err := encodeList(creature.Weaknesses)
	if err != nil {
		return fmt.Errorf("encode weaknesses: %w", err)
	}
	abilities, err := encodeList(creature.Abilities)
	if err != nil {
		return fmt.Errorf("encode abilities: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT OR REPLACE INTO creatures (key, type, description, hp, armor, attack, weaknesses, abilities)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key, creature.Type, creature.Description,
		creature.Stats.HP, creature.Stats.Armor, creature.Stats.Attack,
		weaknesses, abilities,
	)
	if err != nil {
		return fmt.Errorf("put creature: %w", err)
	}
	return nil
}

// Creature returns the creature stored under the given key.
func (s *Store) Creature(ctx context.Context, key string) (lore.Creature, error) {
	if err := s.ready(ctx); err != nil {
		return lore.Creature{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT key, type, description, hp, armor, attack, weaknesses, abilities
		  FROM creatures WHERE key = ?`, key)

	var creature lore.Creature
	var weaknesses, abilities string
	if err := row.Scan(
		&creature.Key, &creature.Type, &creature.Description,
		&creature.Stats.HP, &creature.Stats.Armor, &creature.Stats.Attack,
		&weaknesses, &abilities,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lore.Creature{}, notFound("creature", key)
		}
		return lore.Creature{}, fmt.Errorf("get creature: %w", err)
	}
	if err := decodeList(weaknesses, &creature.Weaknesses); err != nil {
		return lore.Creature{}, fmt.Errorf("decode weaknesses: %w", err)
	}
	if err := decodeList(abilities, &creature.Abilities); err != nil {
		return lore.Creature{}, fmt.Errorf("decode abilities: %w", err)
	}
	return creature, nil
}

// CreatureKeys lists every creature key.
func (s *Store) CreatureKeys(ctx context.Context) ([]string, error) {
	return s.listKeys(ctx, `SELECT key FROM creatures ORDER BY key`)
}

// PutScenario inserts or replaces one scenario entry.
func (s *Store) PutScenario(ctx context.Context, scenario lore.Scenario) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	key := lore.NormalizeKey(scenario.ID)
	if key == "" {
		return fmt.Errorf("scenario id is required")
	}
	rewards, err := encodeList(scenario.Rewards)
	if err != nil {
		return fmt.Errorf("encode rewards: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT OR REPLACE INTO scenarios (key, title, hook, details, rewards)
		VALUES (?, ?, ?, ?, ?)`,
		key, scenario.Title, scenario.Hook, scenario.Details, rewards,
	)
	if err != nil {
		return fmt.Errorf("put scenario: %w", err)
	}
	return nil
}

// Scenario returns the scenario stored under the given key.
func (s *Store) Scenario(ctx context.Context, key string) (lore.Scenario, error) {
	if err := s.ready(ctx); err != nil {
		return lore.Scenario{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT key, title, hook, details, rewards
		  FROM scenarios WHERE key = ?`, key)

	var scenario lore.Scenario
	var rewards string
	if err := row.Scan(&scenario.ID, &scenario.Title, &scenario.Hook, &scenario.Details, &rewards); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lore.Scenario{}, notFound("scenario", key)
		}
		return lore.Scenario{}, fmt.Errorf("get scenario: %w", err)
	}
	if err := decodeList(rewards, &scenario.Rewards); err != nil {
		return lore.Scenario{}, fmt.Errorf("decode rewards: %w", err)
	}
	return scenario, nil
}

// ScenarioKeys lists every scenario key.
func (s *Store) ScenarioKeys(ctx context.Context) ([]string, error) {
	return s.listKeys(ctx, `SELECT key FROM scenarios ORDER BY key`)
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) listKeys(ctx context.Context, query string) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lore keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("list lore keys: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lore keys: %w", err)
	}
	return keys, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func decodeList(encoded string, target *[]string) error {
	if strings.TrimSpace(encoded) == "" {
		*target = nil
		return nil
	}
	return json.Unmarshal([]byte(encoded), target)
}

func notFound(kind, key string) error {
	return apperrors.WithMetadata(
		apperrors.CodeNotFound,
		fmt.Sprintf("%s %q not found", kind, key),
		map[string]string{"kind": kind, "key": key},
	)
}
