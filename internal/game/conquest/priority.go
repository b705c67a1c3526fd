package conquest

import "github.com/mitchelldurbincs/conquestreplay/internal/game/core"

const (
	// Base priorities are drawn from [BaseDrawMin, BaseDrawMax] and offset by BaseOffset.
	BaseDrawMin = 0
	BaseDrawMax = 7
	BaseOffset  = 10
)

// Priority scores a candidate tile; lower values are conquered first.
// Each attacker-owned neighbor lowers the multiplier by 0.5 and rougher
// terrain raises it. Enough attacker neighbors (four on plains) drive the
// multiplier negative and the tile jumps ahead of everything else. Recorded
// replays depend on that ordering, so it is kept.
func Priority(base, ownedByAttacker int, terrain core.Terrain) float64 {
	return float64(base) * (1 - float64(ownedByAttacker)*0.5 + terrain.Weight()/2)
}
