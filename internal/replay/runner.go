package replay

import (
	"fmt"
	"slices"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/conquest"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

// Result is a replayed scenario together with the state it left behind.
type Result struct {
	Outcome conquest.Outcome
	State   *core.MapState
}

// Run replays the scenario on a fresh map state. cfg.Seed is overridden by
// the scenario's seed. When the scenario records an expected order and the
// replay differs, the result is still returned along with ErrReplayMismatch.
func Run(s *Scenario, cfg conquest.Config) (*Result, error) {
	state, err := s.MapState()
	if err != nil {
		return nil, err
	}
	cfg.Seed = s.Seed()

	out := conquest.NewSimulator(state, s.ToAttack(), cfg).Run()
	res := &Result{Outcome: out, State: state}

	if s.Expected != nil && !slices.Equal([]core.TileID(s.Expected), out.Conquered) {
		return res, fmt.Errorf("%w: expected %v, got %v", ErrReplayMismatch, s.Expected, out.Conquered)
	}
	return res, nil
}

// Record replays the scenario and stores the produced order as Expected.
func Record(s *Scenario, cfg conquest.Config) (*Result, error) {
	s.Expected = nil
	res, err := Run(s, cfg)
	if err != nil {
		return nil, err
	}
	s.Expected = append(Order{}, res.Outcome.Conquered...)
	return res, nil
}
