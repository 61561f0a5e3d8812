package world

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/willowdale.yaml
var willowdaleYAML []byte

// document is the on-disk YAML shape for a world map.
type document struct {
	Start     string     `yaml:"start"`
	Locations []Location `yaml:"locations"`
}

// LoadYAML parses a world map from YAML and validates it into a Graph.
// When start is non-empty it overrides the document's start location.
func LoadYAML(data []byte, start string) (*Graph, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse world yaml: %w", err)
	}
	if start == "" {
		start = doc.Start
	}
	graph, err := New(doc.Locations, start)
	if err != nil {
		return nil, fmt.Errorf("build world graph: %w", err)
	}
	return graph, nil
}

// LoadFile reads a world map from a YAML file on disk.
func LoadFile(path, start string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}
	return LoadYAML(data, start)
}

// Willowdale returns the embedded default map: the village of Willowdale
// and its surroundings. The optional start override follows LoadYAML.
func Willowdale(start string) (*Graph, error) {
	return LoadYAML(willowdaleYAML, start)
}
