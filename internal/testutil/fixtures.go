package testutil

import (
	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

// PairMap is S(attacker) <-> T(defender) with ids 1 and 2.
func PairMap(attacker, defender core.PlayerID) *core.MapState {
	m := core.NewMapState()
	m.AddTile(1, attacker, core.Plains)
	m.AddTile(2, defender, core.Plains)
	m.Connect(1, 2)
	return m
}

// LineMap is tile 0 owned by attacker followed by n defender tiles in a row.
func LineMap(n int, attacker, defender core.PlayerID) *core.MapState {
	m := core.NewMapState()
	m.AddTile(0, attacker, core.Plains)
	for i := 1; i <= n; i++ {
		m.AddTile(core.TileID(i), defender, core.Plains)
		m.Connect(core.TileID(i-1), core.TileID(i))
	}
	return m
}

// GridMap is a w×h grid owned entirely by defender except attackerTile.
func GridMap(w, h int, attackerTile core.TileID, attacker, defender core.PlayerID) *core.MapState {
	m := core.NewGrid(w, h).MapState()
	for id := range m.Owners {
		m.Owners[id] = defender
	}
	m.SetOwner(attackerTile, attacker)
	return m
}

// PairScenarioYAML is the replay file form of PairMap("red", "blue").
const PairScenarioYAML = `
attack:
  source: 1
  attacker: red
  defender: blue
  troops: 5
tiles:
  - id: 1
    owner: red
    neighbors: [2]
  - id: 2
    owner: blue
    terrain: highland
    neighbors: [1]
`
