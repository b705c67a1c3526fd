package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/conquest"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
	"github.com/mitchelldurbincs/conquestreplay/internal/testutil"
)

func quietConfig() conquest.Config {
	return conquest.Config{Logger: testutil.NopLogger()}
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(testutil.PairScenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, core.TileID(1), s.Attack.Source)
	assert.Equal(t, core.PlayerID("red"), s.Attack.Attacker)
	assert.Equal(t, core.PlayerID("blue"), s.Attack.Defender)
	assert.Equal(t, 5, s.Attack.Troops)
	assert.Equal(t, conquest.DefaultSeed, s.Seed())
	require.Len(t, s.Tiles, 2)

	state, err := s.MapState()
	require.NoError(t, err)
	assert.Equal(t, core.Highland, state.TerrainOf(2))
	assert.Equal(t, core.Plains, state.TerrainOf(1))
	assert.Equal(t, []core.TileID{2}, state.Neighbors(1))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown terrain",
			yaml: "attack: {source: 1, attacker: red, troops: 1}\ntiles:\n  - {id: 1, owner: red, terrain: swamp, neighbors: []}\n",
			want: core.ErrUnknownTerrain,
		},
		{
			name: "duplicate tile",
			yaml: "attack: {source: 1, attacker: red, troops: 1}\ntiles:\n  - {id: 1, owner: red, neighbors: []}\n  - {id: 1, owner: blue, neighbors: []}\n",
			want: core.ErrDuplicateTile,
		},
		{
			name: "dangling neighbor",
			yaml: "attack: {source: 1, attacker: red, troops: 1}\ntiles:\n  - {id: 1, owner: red, neighbors: [7]}\n",
			want: core.ErrDanglingNeighbor,
		},
		{
			name: "missing attacker",
			yaml: "attack: {source: 1, troops: 1}\ntiles:\n  - {id: 1, owner: red, neighbors: []}\n",
			want: core.ErrInvalidScenario,
		},
		{
			name: "attacker attacks itself",
			yaml: "attack: {source: 1, attacker: red, defender: red, troops: 1}\ntiles:\n  - {id: 1, owner: red, neighbors: []}\n",
			want: core.ErrInvalidScenario,
		},
		{
			name: "unknown source",
			yaml: "attack: {source: 3, attacker: red, troops: 1}\ntiles:\n  - {id: 1, owner: red, neighbors: []}\n",
			want: core.ErrUnknownTile,
		},
		{
			name: "unknown field",
			yaml: "attack: {source: 1, attacker: red, troops: 1, cavalry: 3}\ntiles: []\n",
			want: core.ErrInvalidScenario,
		},
		{
			name: "not yaml",
			yaml: "attack: [",
			want: core.ErrInvalidScenario,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := testutil.WriteFile(t, "pair.yaml", testutil.PairScenarioYAML)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Tiles, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := testutil.WriteFile(t, "bad.yaml", "attack: {source: 1, troops: 1}\ntiles: []\n")
	_, err = Load(bad)
	assert.ErrorIs(t, err, core.ErrInvalidScenario)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestRoundTrip(t *testing.T) {
	state := testutil.GridMap(4, 3, 5, "red", "blue")
	state.Terrain = map[core.TileID]core.Terrain{2: core.Mountain, 7: core.Highland}
	state.SetOwner(11, core.Unclaimed)
	attack := conquest.Attack{Source: 5, Attacker: "red", Defender: "blue", Troops: 6}

	s := FromMapState("grid", state, attack, 42)
	data, err := Encode(s)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "grid", parsed.Name)
	assert.Equal(t, int64(42), parsed.Seed())
	assert.Equal(t, attack, parsed.ToAttack())

	rebuilt, err := parsed.MapState()
	require.NoError(t, err)
	assert.Equal(t, state.Owners, rebuilt.Owners)
	assert.Equal(t, state.Adjacency, rebuilt.Adjacency)
	assert.Equal(t, state.Terrain, rebuilt.Terrain)
}

func TestFromMapStateDefaultSeedIsImplicit(t *testing.T) {
	s := FromMapState("pair", testutil.PairMap("red", "blue"), conquest.Attack{Source: 1, Attacker: "red", Defender: "blue", Troops: 1}, conquest.DefaultSeed)
	assert.Nil(t, s.Attack.Seed)

	data, err := Encode(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "seed")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	s := FromMapState("pair", testutil.PairMap("red", core.Unclaimed), conquest.Attack{Source: 1, Attacker: "red", Troops: 2}, conquest.DefaultSeed)

	require.NoError(t, Save(path, s))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, core.Unclaimed, loaded.Attack.Defender)
	assert.Equal(t, core.Unclaimed, loaded.Tiles[1].Owner)
}
