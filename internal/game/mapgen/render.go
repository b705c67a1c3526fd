package mapgen

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

var playerColors = []string{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorCyan}

const (
	PlainsSymbol   = "·"
	HighlandSymbol = "^"
	MountainSymbol = "▲"
	UnknownSymbol  = "?"
)

// RenderOptions controls Render output.
type RenderOptions struct {
	Color bool
	// Conquered tiles are drawn in lowercase so a replay's result stands out.
	Conquered []core.TileID
}

// Render draws state on grid. Players are lettered A, B, ... in the order
// given; unclaimed tiles show their terrain.
func Render(grid core.Grid, state *core.MapState, players []core.PlayerID, opts RenderOptions) string {
	letters := make(map[core.PlayerID]int, len(players))
	for i, p := range players {
		letters[p] = i
	}
	conquered := make(map[core.TileID]bool, len(opts.Conquered))
	for _, t := range opts.Conquered {
		conquered[t] = true
	}

	var sb strings.Builder
	sb.Grow((grid.W*12 + 8) * (grid.H + 3))

	sb.WriteString("   ")
	for x := 0; x < grid.W; x++ {
		fmt.Fprintf(&sb, "%2d", x)
	}
	sb.WriteString("\n")

	for y := 0; y < grid.H; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < grid.W; x++ {
			id := grid.Idx(x, y)
			sb.WriteString(" ")
			sb.WriteString(tileSymbol(state, id, letters, conquered[id], opts.Color))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(PlainsSymbol + "=plains " + HighlandSymbol + "=highland " + MountainSymbol + "=mountain")
	for i, p := range players {
		fmt.Fprintf(&sb, " %c=%s", 'A'+rune(i), p)
	}
	sb.WriteString("\n")
	return sb.String()
}

func tileSymbol(state *core.MapState, id core.TileID, letters map[core.PlayerID]int, conquered, color bool) string {
	owner, ok := state.Owner(id)
	if !ok {
		return UnknownSymbol
	}
	idx, isPlayer := letters[owner]
	if owner.IsUnclaimed() || !isPlayer {
		var sym string
		switch state.TerrainOf(id) {
		case core.Mountain:
			sym = MountainSymbol
		case core.Highland:
			sym = HighlandSymbol
		default:
			sym = PlainsSymbol
		}
		if color {
			return ColorGray + sym + ColorReset
		}
		return sym
	}

	sym := string('A' + rune(idx))
	if conquered {
		sym = strings.ToLower(sym)
	}
	if color {
		return playerColors[idx%len(playerColors)] + sym + ColorReset
	}
	return sym
}
