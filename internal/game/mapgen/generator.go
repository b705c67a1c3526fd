package mapgen

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

var ErrNoSpawnLocation = errors.New("no valid spawn location")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Width           int
	Height          int
	Players         []core.PlayerID
	MountainVeins   int
	MinVeinLength   int
	MaxVeinLength   int
	HighlandChance  float64 // chance a plains tile bordering a mountain becomes highland
	MinSpawnSpacing int
	SpawnRadius     int // Manhattan radius claimed around each spawn
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h int, players []core.PlayerID) MapConfig {
	maxVein := w / 4
	if maxVein < 3 {
		maxVein = 3
	}
	return MapConfig{
		Width:           w,
		Height:          h,
		Players:         players,
		MountainVeins:   (w * h) / 50,
		MinVeinLength:   3,
		MaxVeinLength:   maxVein,
		HighlandChance:  0.5,
		MinSpawnSpacing: 5,
		SpawnRadius:     1,
	}
}

// Map is a generated grid with its graph form.
type Map struct {
	Grid   core.Grid
	State  *core.MapState
	Spawns []Spawn
}

// Spawn tracks where a player's starting territory was centered
type Spawn struct {
	Player core.PlayerID
	Tile   core.TileID
	X, Y   int
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// NewSeededGenerator creates a generator whose output depends only on seed.
func NewSeededGenerator(config MapConfig, seed uint64) *Generator {
	return NewGenerator(config, rand.New(rand.NewSource(seed)))
}

// GenerateMap creates an unclaimed grid, lays down terrain and claims a
// starting territory for each player.
func (g *Generator) GenerateMap() (*Map, error) {
	if g.config.Width <= 0 || g.config.Height <= 0 {
		return nil, fmt.Errorf("map %dx%d: %w", g.config.Width, g.config.Height, core.ErrInvalidScenario)
	}
	grid := core.NewGrid(g.config.Width, g.config.Height)
	m := &Map{Grid: grid, State: grid.MapState()}

	g.placeMountains(m)
	g.placeHighlands(m)

	spawns, err := g.placeSpawns(m)
	if err != nil {
		return nil, err
	}
	m.Spawns = spawns
	return m, nil
}

func (g *Generator) setTerrain(m *Map, id core.TileID, t core.Terrain) {
	if m.State.Terrain == nil {
		m.State.Terrain = make(map[core.TileID]core.Terrain)
	}
	m.State.Terrain[id] = t
}

// placeMountains lays random-walk veins of mountain tiles.
func (g *Generator) placeMountains(m *Map) {
	if g.config.MountainVeins <= 0 || g.config.MinVeinLength <= 0 {
		return
	}
	span := g.config.MaxVeinLength - g.config.MinVeinLength + 1
	if span < 1 {
		span = 1
	}

	for v := 0; v < g.config.MountainVeins; v++ {
		length := g.config.MinVeinLength + g.rng.Intn(span)
		x, y := g.rng.Intn(m.Grid.W), g.rng.Intn(m.Grid.H)
		for step := 0; step < length; step++ {
			g.setTerrain(m, m.Grid.Idx(x, y), core.Mountain)

			// Try a few directions before giving up on the vein
			moved := false
			for attempt := 0; attempt < 4 && !moved; attempt++ {
				nb := m.Grid.Neighbors(m.Grid.Idx(x, y))
				if len(nb) == 0 {
					break
				}
				next := nb[g.rng.Intn(len(nb))]
				if m.State.TerrainOf(next) != core.Mountain {
					x, y = m.Grid.XY(next)
					moved = true
				}
			}
			if !moved {
				break
			}
		}
	}
}

// placeHighlands turns some plains bordering mountains into highland.
func (g *Generator) placeHighlands(m *Map) {
	if g.config.HighlandChance <= 0 {
		return
	}
	for i := 0; i < m.Grid.Size(); i++ {
		id := core.TileID(i)
		if m.State.TerrainOf(id) != core.Plains {
			continue
		}
		bordersMountain := false
		for _, n := range m.Grid.Neighbors(id) {
			if m.State.TerrainOf(n) == core.Mountain {
				bordersMountain = true
				break
			}
		}
		if bordersMountain && g.rng.Float64() < g.config.HighlandChance {
			g.setTerrain(m, id, core.Highland)
		}
	}
}

func (g *Generator) placeSpawns(m *Map) ([]Spawn, error) {
	spawns := make([]Spawn, 0, len(g.config.Players))

	for _, player := range g.config.Players {
		spawn, err := g.findSpawnLocation(m, spawns)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", player, err)
		}
		spawn.Player = player
		g.claim(m, spawn)
		spawns = append(spawns, spawn)
	}

	return spawns, nil
}

func (g *Generator) spawnable(m *Map, id core.TileID) bool {
	return m.State.IsOwnedBy(id, core.Unclaimed) && m.State.TerrainOf(id) != core.Mountain
}

func (g *Generator) findSpawnLocation(m *Map, existing []Spawn) (Spawn, error) {
	maxAttempts := m.Grid.Size() // Fallback to prevent infinite loops

	for attempts := 0; attempts < maxAttempts; attempts++ {
		x, y := g.rng.Intn(m.Grid.W), g.rng.Intn(m.Grid.H)
		id := m.Grid.Idx(x, y)
		if !g.spawnable(m, id) {
			continue
		}

		validLocation := true
		for _, other := range existing {
			if m.Grid.Distance(x, y, other.X, other.Y) < g.config.MinSpawnSpacing {
				validLocation = false
				break
			}
		}
		if validLocation {
			return Spawn{Tile: id, X: x, Y: y}, nil
		}
	}

	// Fallback: place anywhere valid, ignoring spacing
	for i := 0; i < m.Grid.Size(); i++ {
		id := core.TileID(i)
		if g.spawnable(m, id) {
			x, y := m.Grid.XY(id)
			return Spawn{Tile: id, X: x, Y: y}, nil
		}
	}

	return Spawn{}, ErrNoSpawnLocation
}

// claim gives the player every unclaimed, non-mountain tile within
// SpawnRadius of the spawn.
func (g *Generator) claim(m *Map, s Spawn) {
	m.State.SetOwner(s.Tile, s.Player)
	r := g.config.SpawnRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := s.X+dx, s.Y+dy
			if !m.Grid.InBounds(x, y) || m.Grid.Distance(s.X, s.Y, x, y) > r {
				continue
			}
			id := m.Grid.Idx(x, y)
			if g.spawnable(m, id) {
				m.State.SetOwner(id, s.Player)
			}
		}
	}
}
