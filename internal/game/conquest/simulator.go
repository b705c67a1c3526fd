// Package conquest replays an attack over a tile graph and reports the order
// in which tiles fall to the attacker.
package conquest

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/events"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/rng"
)

// DefaultSeed is the seed used by recorded replays that do not carry one.
const DefaultSeed int64 = 123

// Board is the map state an attack reads and writes. *core.MapState
// implements it.
type Board interface {
	Neighbors(t core.TileID) []core.TileID
	Owner(t core.TileID) (core.PlayerID, bool)
	IsOwnedBy(t core.TileID, p core.PlayerID) bool
	SetOwner(t core.TileID, p core.PlayerID)
	TerrainOf(t core.TileID) core.Terrain
}

// Attack describes one attack action. Defender core.Unclaimed targets
// territory nobody holds.
type Attack struct {
	Source   core.TileID
	Attacker core.PlayerID
	Defender core.PlayerID
	Troops   int
}

// Config holds the optional collaborators of a Simulator.
type Config struct {
	Seed       int64
	AttackID   string           // generated when empty
	Logger     zerolog.Logger
	Publisher  events.Publisher // nil disables events
	TraceSkips bool             // log every discarded frontier entry at trace level
}

// DefaultConfig returns the configuration recorded replays were produced with.
func DefaultConfig() Config {
	return Config{
		Seed:   DefaultSeed,
		Logger: log.Logger,
	}
}

// Outcome summarizes a finished simulation.
type Outcome struct {
	AttackID        string
	Conquered       []core.TileID
	TroopsRemaining int
	Skipped         int
	Duration        time.Duration
}

// Simulator runs a single attack. It owns the board exclusively while
// running and is not reusable: a second run conquers nothing.
type Simulator struct {
	board     Board
	attack    Attack
	rng       *rng.PseudoRandom
	attackID  string
	logger    zerolog.Logger
	publisher events.Publisher
	trace     bool

	frontier *frontier
	seen     map[core.TileID]struct{}
	troops   int
	skipped  int
	done     bool
}

func NewSimulator(board Board, attack Attack, cfg Config) *Simulator {
	attackID := cfg.AttackID
	if attackID == "" {
		attackID = uuid.New().String()
	}
	return &Simulator{
		board:     board,
		attack:    attack,
		rng:       rng.New(cfg.Seed),
		attackID:  attackID,
		logger:    cfg.Logger.With().Str("component", "conquest").Str("attack_id", attackID).Logger(),
		publisher: cfg.Publisher,
		trace:     cfg.TraceSkips,
		frontier:  newFrontier(),
		seen:      make(map[core.TileID]struct{}),
		troops:    attack.Troops,
	}
}

// Simulate runs the attack and returns the conquered tiles in conquest
// order. Ownership of each conquered tile is written to the board.
func (s *Simulator) Simulate() []core.TileID {
	return s.Run().Conquered
}

// Remaining returns the troops not yet spent.
func (s *Simulator) Remaining() int { return s.troops }

func (s *Simulator) AttackID() string { return s.attackID }

// Run is Simulate with bookkeeping and events.
func (s *Simulator) Run() Outcome {
	if s.done {
		s.logger.Warn().Msg("Simulator already ran; ignoring")
		return Outcome{AttackID: s.attackID, TroopsRemaining: s.troops}
	}
	s.done = true
	start := time.Now()

	s.logger.Debug().
		Int("source", int(s.attack.Source)).
		Str("attacker", s.attack.Attacker.String()).
		Str("defender", s.attack.Defender.String()).
		Int("troops", s.troops).
		Int64("seed", s.rng.Seed()).
		Msg("Starting attack")
	s.publish(events.NewAttackStartedEvent(s.attackID, s.attack.Source, s.attack.Attacker, s.attack.Defender, s.troops, s.rng.Seed()))

	var result []core.TileID
	s.expand(s.attack.Source)

	for s.frontier.len() > 0 && s.troops > 0 {
		c := s.frontier.pop()
		if reason := s.rejectReason(c.tile); reason != "" {
			s.skipped++
			if s.trace {
				s.logger.Trace().Int("tile", int(c.tile)).Str("reason", reason).Msg("Skipping candidate")
			}
			continue
		}

		s.board.SetOwner(c.tile, s.attack.Attacker)
		s.troops--
		result = append(result, c.tile)
		s.seen[c.tile] = struct{}{}

		s.logger.Trace().
			Int("tile", int(c.tile)).
			Float64("priority", c.priority).
			Int("troops_remaining", s.troops).
			Msg("Tile conquered")
		s.publish(events.NewTileConqueredEvent(s.attackID, c.tile, len(result)-1, c.priority, s.attack.Defender, s.attack.Attacker, s.troops))

		s.expand(c.tile)
	}

	out := Outcome{
		AttackID:        s.attackID,
		Conquered:       result,
		TroopsRemaining: s.troops,
		Skipped:         s.skipped,
		Duration:        time.Since(start),
	}
	s.logger.Debug().
		Int("conquered", len(result)).
		Int("troops_remaining", s.troops).
		Int("skipped", s.skipped).
		Int("rng_draws", s.rng.Draws()).
		Dur("duration", out.Duration).
		Msg("Attack finished")
	s.publish(events.NewAttackFinishedEvent(s.attackID, len(result), s.troops, s.skipped, out.Duration))
	return out
}

// rejectReason returns why a popped candidate cannot be conquered now, or ""
// if it can. Ownership is read live, not from the time it was queued.
func (s *Simulator) rejectReason(tile core.TileID) string {
	if _, ok := s.seen[tile]; ok {
		return "seen"
	}
	if !s.board.IsOwnedBy(tile, s.attack.Defender) {
		return "not_defender"
	}
	if s.countAttackerNeighbors(tile) == 0 {
		return "not_bordering"
	}
	return ""
}

// expand queues every unseen defender-owned neighbor of tile with a fresh
// priority. Neighbors are visited in adjacency order so draws are reproducible.
func (s *Simulator) expand(tile core.TileID) {
	for _, n := range s.board.Neighbors(tile) {
		if _, ok := s.seen[n]; ok {
			continue
		}
		if !s.board.IsOwnedBy(n, s.attack.Defender) {
			continue
		}
		owned := s.countAttackerNeighbors(n)
		base := s.rng.NextInt(BaseDrawMin, BaseDrawMax) + BaseOffset
		s.frontier.push(n, Priority(base, owned, s.board.TerrainOf(n)))
	}
}

func (s *Simulator) countAttackerNeighbors(tile core.TileID) int {
	count := 0
	for _, adj := range s.board.Neighbors(tile) {
		if s.board.IsOwnedBy(adj, s.attack.Attacker) {
			count++
		}
	}
	return count
}

func (s *Simulator) publish(e events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

// Simulate is a convenience wrapper running one attack with the default
// configuration and the given seed.
func Simulate(board Board, attack Attack, seed int64) []core.TileID {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return NewSimulator(board, attack, cfg).Simulate()
}
