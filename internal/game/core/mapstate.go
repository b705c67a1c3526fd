package core

import (
	"fmt"
	"sort"
	"strings"
)

// MapState is the topology, ownership and optional terrain of a map.
// Ownership is the only part mutated during an attack. A MapState is not safe
// for concurrent use; callers hand it to one simulation at a time.
type MapState struct {
	Owners    map[TileID]PlayerID
	Adjacency map[TileID][]TileID
	Terrain   map[TileID]Terrain // nil means every tile is Plains
}

func NewMapState() *MapState {
	return &MapState{
		Owners:    make(map[TileID]PlayerID),
		Adjacency: make(map[TileID][]TileID),
	}
}

// AddTile registers a tile with its owner. Terrain other than Plains
// allocates the terrain map on first use.
func (m *MapState) AddTile(id TileID, owner PlayerID, terrain Terrain) {
	m.Owners[id] = owner
	if _, ok := m.Adjacency[id]; !ok {
		m.Adjacency[id] = nil
	}
	if terrain != Plains {
		if m.Terrain == nil {
			m.Terrain = make(map[TileID]Terrain)
		}
		m.Terrain[id] = terrain
	}
}

// AddNeighbor appends b to a's adjacency list only.
func (m *MapState) AddNeighbor(a, b TileID) {
	if contains(m.Adjacency[a], b) {
		return
	}
	m.Adjacency[a] = append(m.Adjacency[a], b)
}

// Connect adds a bidirectional border between two tiles.
func (m *MapState) Connect(a, b TileID) {
	m.AddNeighbor(a, b)
	m.AddNeighbor(b, a)
}

// Neighbors returns the ordered adjacency of t. Unknown tiles have none.
func (m *MapState) Neighbors(t TileID) []TileID {
	return m.Adjacency[t]
}

// Owner returns the current owner of t. ok is false when the tile has no
// ownership record, which is distinct from being Unclaimed.
func (m *MapState) Owner(t TileID) (PlayerID, bool) {
	p, ok := m.Owners[t]
	return p, ok
}

// IsOwnedBy reports whether t has an ownership record equal to p.
func (m *MapState) IsOwnedBy(t TileID, p PlayerID) bool {
	owner, ok := m.Owners[t]
	return ok && owner == p
}

func (m *MapState) SetOwner(t TileID, p PlayerID) {
	m.Owners[t] = p
}

// TerrainOf defaults to Plains when there is no terrain data for t.
func (m *MapState) TerrainOf(t TileID) Terrain {
	if m.Terrain == nil {
		return Plains
	}
	terrain, ok := m.Terrain[t]
	if !ok {
		return Plains
	}
	return terrain
}

// TilesOwnedBy returns every tile owned by p in ascending id order.
func (m *MapState) TilesOwnedBy(p PlayerID) []TileID {
	var tiles []TileID
	for id, owner := range m.Owners {
		if owner == p {
			tiles = append(tiles, id)
		}
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i] < tiles[j] })
	return tiles
}

// BorderTiles returns the tiles owned by p that have at least one neighbor
// owned by target, in ascending id order.
func (m *MapState) BorderTiles(p, target PlayerID) []TileID {
	var tiles []TileID
	for _, id := range m.TilesOwnedBy(p) {
		for _, n := range m.Adjacency[id] {
			if m.IsOwnedBy(n, target) {
				tiles = append(tiles, id)
				break
			}
		}
	}
	return tiles
}

// TileIDs returns every tile known to either ownership or adjacency, sorted.
func (m *MapState) TileIDs() []TileID {
	seen := make(map[TileID]struct{}, len(m.Owners))
	for id := range m.Owners {
		seen[id] = struct{}{}
	}
	for id := range m.Adjacency {
		seen[id] = struct{}{}
	}
	ids := make([]TileID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy; adjacency slices are not shared.
func (m *MapState) Clone() *MapState {
	c := &MapState{
		Owners:    make(map[TileID]PlayerID, len(m.Owners)),
		Adjacency: make(map[TileID][]TileID, len(m.Adjacency)),
	}
	for id, owner := range m.Owners {
		c.Owners[id] = owner
	}
	for id, adj := range m.Adjacency {
		c.Adjacency[id] = append([]TileID(nil), adj...)
	}
	if m.Terrain != nil {
		c.Terrain = make(map[TileID]Terrain, len(m.Terrain))
		for id, terrain := range m.Terrain {
			c.Terrain[id] = terrain
		}
	}
	return c
}

// Validate checks referential integrity: every adjacency key and neighbor has
// an ownership record. The simulator never calls this; loaders do.
func (m *MapState) Validate() error {
	for _, id := range m.TileIDs() {
		if _, ok := m.Owners[id]; !ok {
			return fmt.Errorf("%w: %d has no owner record", ErrUnknownTile, id)
		}
		for _, n := range m.Adjacency[id] {
			if _, ok := m.Owners[n]; !ok {
				return fmt.Errorf("%w: %d -> %d", ErrDanglingNeighbor, id, n)
			}
		}
	}
	for id := range m.Terrain {
		if _, ok := m.Owners[id]; !ok {
			return fmt.Errorf("%w: terrain entry for %d", ErrUnknownTile, id)
		}
	}
	return nil
}

// String renders one line per tile: "id owner terrain -> neighbors".
func (m *MapState) String() string {
	var sb strings.Builder
	for _, id := range m.TileIDs() {
		owner, ok := m.Owners[id]
		ownerStr := owner.String()
		if !ok {
			ownerStr = "<none>"
		}
		fmt.Fprintf(&sb, "%d %s %s -> %v\n", id, ownerStr, m.TerrainOf(id), m.Adjacency[id])
	}
	return sb.String()
}

func contains(slice []TileID, item TileID) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}
