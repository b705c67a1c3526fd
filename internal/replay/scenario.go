// Package replay reads and writes attack scenarios: a map state plus the
// parameters of one attack, optionally with the conquest order it is
// expected to produce.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/conquest"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

var ErrReplayMismatch = errors.New("replay diverged from recorded outcome")

// Scenario is the on-disk form of a replay.
type Scenario struct {
	Name     string     `yaml:"name,omitempty"`
	Attack   AttackSpec `yaml:"attack"`
	Tiles    []TileSpec `yaml:"tiles"`
	Expected Order      `yaml:"expected,omitempty,flow"`
}

// Order is a recorded conquest order. A nil Order means nothing was
// recorded; an empty one records an attack that conquers nothing and is
// still written out.
type Order []core.TileID

// IsZero lets the encoder omit only unrecorded orders.
func (o Order) IsZero() bool { return o == nil }

type AttackSpec struct {
	Source   core.TileID   `yaml:"source"`
	Attacker core.PlayerID `yaml:"attacker"`
	Defender core.PlayerID `yaml:"defender,omitempty"`
	Troops   int           `yaml:"troops"`
	Seed     *int64        `yaml:"seed,omitempty"`
}

// TileSpec describes one tile. An empty owner is unclaimed; an empty
// terrain is plains.
type TileSpec struct {
	ID        core.TileID   `yaml:"id"`
	Owner     core.PlayerID `yaml:"owner,omitempty"`
	Terrain   string        `yaml:"terrain,omitempty"`
	Neighbors []core.TileID `yaml:"neighbors,flow"`
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", core.ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

func Encode(s *Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	return buf.Bytes(), nil
}

func Save(path string, s *Scenario) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scenario %s: %w", path, err)
	}
	return nil
}

// Validate checks the scenario is self-consistent: unique tile ids, known
// terrain, resolvable neighbors and a listed source tile.
func (s *Scenario) Validate() error {
	if s.Attack.Attacker.IsUnclaimed() {
		return fmt.Errorf("%w: attack.attacker is required", core.ErrInvalidScenario)
	}
	if s.Attack.Attacker == s.Attack.Defender {
		return fmt.Errorf("%w: attacker and defender are both %s", core.ErrInvalidScenario, s.Attack.Attacker)
	}
	state, err := s.MapState()
	if err != nil {
		return err
	}
	if _, ok := state.Owner(s.Attack.Source); !ok {
		return fmt.Errorf("%w: source %d", core.ErrUnknownTile, s.Attack.Source)
	}
	return state.Validate()
}

// MapState builds a fresh map state from the tile list.
func (s *Scenario) MapState() (*core.MapState, error) {
	state := core.NewMapState()
	for _, t := range s.Tiles {
		if _, dup := state.Owners[t.ID]; dup {
			return nil, fmt.Errorf("%w: %d", core.ErrDuplicateTile, t.ID)
		}
		terrain, err := core.ParseTerrain(t.Terrain)
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", t.ID, err)
		}
		state.AddTile(t.ID, t.Owner, terrain)
		state.Adjacency[t.ID] = append([]core.TileID(nil), t.Neighbors...)
	}
	return state, nil
}

func (s *Scenario) ToAttack() conquest.Attack {
	return conquest.Attack{
		Source:   s.Attack.Source,
		Attacker: s.Attack.Attacker,
		Defender: s.Attack.Defender,
		Troops:   s.Attack.Troops,
	}
}

// Seed returns the recorded seed or conquest.DefaultSeed.
func (s *Scenario) Seed() int64 {
	if s.Attack.Seed != nil {
		return *s.Attack.Seed
	}
	return conquest.DefaultSeed
}

// FromMapState captures state and attack as a scenario. Tiles are listed
// in ascending id order; tiles without an owner record are dropped.
func FromMapState(name string, state *core.MapState, attack conquest.Attack, seed int64) *Scenario {
	s := &Scenario{
		Name: name,
		Attack: AttackSpec{
			Source:   attack.Source,
			Attacker: attack.Attacker,
			Defender: attack.Defender,
			Troops:   attack.Troops,
		},
	}
	if seed != conquest.DefaultSeed {
		s.Attack.Seed = &seed
	}
	for _, id := range state.TileIDs() {
		owner, ok := state.Owner(id)
		if !ok {
			continue
		}
		spec := TileSpec{
			ID:        id,
			Owner:     owner,
			Neighbors: append([]core.TileID{}, state.Neighbors(id)...),
		}
		if terrain := state.TerrainOf(id); terrain != core.Plains {
			spec.Terrain = terrain.String()
		}
		s.Tiles = append(s.Tiles, spec)
	}
	return s
}
