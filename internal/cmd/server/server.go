// Package server parses DungeonMind server flags, assembles the world,
// stores, and services, and runs the MCP server over the selected transport.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	characterservice "github.com/greywick/dungeonmind/internal/character/service"
	"github.com/greywick/dungeonmind/internal/lore/seed"
	loresqlite "github.com/greywick/dungeonmind/internal/lore/sqlite"
	"github.com/greywick/dungeonmind/internal/mcpserver"
	"github.com/greywick/dungeonmind/internal/platform/config"
	"github.com/greywick/dungeonmind/internal/platform/otel"
	sessionservice "github.com/greywick/dungeonmind/internal/session/service"
	"github.com/greywick/dungeonmind/internal/storage/memory"
	"github.com/greywick/dungeonmind/internal/world"
)

// Config holds DungeonMind server configuration.
type Config struct {
	Transport     string `env:"DUNGEONMIND_MCP_TRANSPORT"  envDefault:"stdio"`
	HTTPAddr      string `env:"DUNGEONMIND_MCP_HTTP_ADDR"  envDefault:"localhost:8081"`
	ContentDB     string `env:"DUNGEONMIND_CONTENT_DB"     envDefault:"dungeonmind.db"`
	WorldFile     string `env:"DUNGEONMIND_WORLD_FILE"`
	StartLocation string `env:"DUNGEONMIND_START_LOCATION"`
}

// ParseConfig parses environment and flags into a Config. Flags override
// environment values.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.ContentDB, "content-db", cfg.ContentDB, "path to the lore content database")
	fs.StringVar(&cfg.WorldFile, "world-file", cfg.WorldFile, "path to a YAML world map (defaults to the embedded map)")
	fs.StringVar(&cfg.StartLocation, "start-location", cfg.StartLocation, "starting location id (defaults to the map's start)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run assembles the services and serves MCP until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "server")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	graph, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	catalog, err := loresqlite.Open(cfg.ContentDB)
	if err != nil {
		return fmt.Errorf("open lore catalog: %w", err)
	}
	defer func() {
		if err := catalog.Close(); err != nil {
			log.Printf("close lore catalog: %v", err)
		}
	}()
	if err := seed.Load(ctx, catalog); err != nil {
		return fmt.Errorf("seed lore catalog: %w", err)
	}

	characterStore := memory.NewCharacterStore()
	deps := mcpserver.Deps{
		Characters: characterservice.New(characterStore, graph),
		Sessions:   sessionservice.New(memory.NewSessionStore(), characterStore, graph),
		World:      graph,
		Lore:       catalog,
	}

	log.Printf("starting transport=%s start=%s", cfg.Transport, graph.Start())
	return mcpserver.Run(ctx, deps, mcpserver.Config{
		Transport: mcpserver.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}

// loadWorld builds the world graph from the configured YAML file or the
// embedded default map.
func loadWorld(cfg Config) (*world.Graph, error) {
	if cfg.WorldFile != "" {
		graph, err := world.LoadFile(cfg.WorldFile, cfg.StartLocation)
		if err != nil {
			return nil, fmt.Errorf("load world file %s: %w", cfg.WorldFile, err)
		}
		return graph, nil
	}
	graph, err := world.Willowdale(cfg.StartLocation)
	if err != nil {
		return nil, fmt.Errorf("load embedded world: %w", err)
	}
	return graph, nil
}
