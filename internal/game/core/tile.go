package core

import (
	"fmt"
	"strings"
)

// TileID identifies a node of the map graph. It carries no structure beyond identity.
type TileID int

// PlayerID identifies a player. Unclaimed is the owner of territory nobody holds.
type PlayerID string

const Unclaimed PlayerID = ""

func (p PlayerID) IsUnclaimed() bool { return p == Unclaimed }

func (p PlayerID) String() string {
	if p == Unclaimed {
		return "<unclaimed>"
	}
	return string(p)
}

// Terrain is the difficulty class of a tile. The zero value is Plains.
type Terrain int

const (
	Plains Terrain = iota
	Highland
	Mountain
)

// Weight is the multiplier terrain contributes to conquest priority.
func (t Terrain) Weight() float64 {
	switch t {
	case Highland:
		return 1.5
	case Mountain:
		return 2
	default:
		return 1
	}
}

func (t Terrain) String() string {
	switch t {
	case Plains:
		return "plains"
	case Highland:
		return "highland"
	case Mountain:
		return "mountain"
	default:
		return fmt.Sprintf("terrain(%d)", int(t))
	}
}

// ParseTerrain accepts the lowercase or capitalized terrain name. An empty
// string parses as Plains.
func ParseTerrain(s string) (Terrain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plains":
		return Plains, nil
	case "highland":
		return Highland, nil
	case "mountain":
		return Mountain, nil
	}
	return Plains, fmt.Errorf("%w: %q", ErrUnknownTerrain, s)
}
