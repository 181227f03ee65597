// Package fixture serves rank histories from a local YAML file, for offline
// runs and tests.
package fixture

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/teambalancer/internal/adapters/source"
)

// File is the on-disk layout:
//
//	players:
//	  Faker: ["GOLD 3 20LP", "GOLD 1 10LP"]
type File struct {
	Players map[string][]string `yaml:"players"`
}

// Provider returns histories from a decoded fixture file.
type Provider struct {
	players map[string][]string
}

// New creates a provider over an in-memory fixture.
func New(players map[string][]string) *Provider {
	cp := make(map[string][]string, len(players))
	for k, v := range players {
		cp[k] = append([]string(nil), v...)
	}
	return &Provider{players: cp}
}

// Load reads a fixture file from path.
func Load(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return New(f.Players), nil
}

// FetchHistory implements source.Source.
func (p *Provider) FetchHistory(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrFetch, err)
	}
	seasons, ok := p.players[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", source.ErrUnknownPlayer, name)
	}
	return append([]string(nil), seasons...), nil
}
