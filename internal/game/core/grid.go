package core

// Grid maps a W×H rectangle onto TileIDs in row-major order. Generated maps
// and the demo renderer use it; the simulator only ever sees the graph.
type Grid struct {
	W, H int
}

func NewGrid(w, h int) Grid {
	return Grid{W: w, H: h}
}

func (g Grid) Size() int { return g.W * g.H }
func (g Grid) Idx(x, y int) TileID { return TileID(y*g.W + x) }
func (g Grid) XY(id TileID) (int, int) { return int(id) % g.W, int(id) / g.W }

// InBounds checks if coordinates are within grid boundaries
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g Grid) Distance(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// orthogonal offsets in the order neighbors are listed: up, down, left, right.
var orthogonal = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Neighbors lists the in-bounds orthogonal neighbors of id.
func (g Grid) Neighbors(id TileID) []TileID {
	x, y := g.XY(id)
	out := make([]TileID, 0, 4)
	for _, d := range orthogonal {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) {
			out = append(out, g.Idx(nx, ny))
		}
	}
	return out
}

// MapState builds a fully unclaimed, all-Plains state with orthogonal adjacency.
func (g Grid) MapState() *MapState {
	m := NewMapState()
	for i := 0; i < g.Size(); i++ {
		id := TileID(i)
		m.Owners[id] = Unclaimed
		m.Adjacency[id] = g.Neighbors(id)
	}
	return m
}
