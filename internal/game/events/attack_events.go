package events

import (
	"time"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
)

// Event type constants
const (
	TypeAttackStarted  = "attack.started"
	TypeTileConquered  = "tile.conquered"
	TypeAttackFinished = "attack.finished"
)

// AttackStartedEvent is published before the first frontier expansion.
type AttackStartedEvent struct {
	BaseEvent
	Source   core.TileID   `json:"source"`
	Attacker core.PlayerID `json:"attacker"`
	Defender core.PlayerID `json:"defender"`
	Troops   int           `json:"troops"`
	Seed     int64         `json:"seed"`
}

func NewAttackStartedEvent(attackID string, source core.TileID, attacker, defender core.PlayerID, troops int, seed int64) *AttackStartedEvent {
	return &AttackStartedEvent{
		BaseEvent: newBase(TypeAttackStarted, attackID),
		Source:    source,
		Attacker:  attacker,
		Defender:  defender,
		Troops:    troops,
		Seed:      seed,
	}
}

// TileConqueredEvent is published once per tile, in conquest order.
type TileConqueredEvent struct {
	BaseEvent
	Tile            core.TileID   `json:"tile"`
	Order           int           `json:"order"`
	Priority        float64       `json:"priority"`
	PreviousOwner   core.PlayerID `json:"previous_owner"`
	NewOwner        core.PlayerID `json:"new_owner"`
	TroopsRemaining int           `json:"troops_remaining"`
}

func NewTileConqueredEvent(attackID string, tile core.TileID, order int, priority float64, previous, owner core.PlayerID, remaining int) *TileConqueredEvent {
	return &TileConqueredEvent{
		BaseEvent:       newBase(TypeTileConquered, attackID),
		Tile:            tile,
		Order:           order,
		Priority:        priority,
		PreviousOwner:   previous,
		NewOwner:        owner,
		TroopsRemaining: remaining,
	}
}

// AttackFinishedEvent closes an attack. Skipped counts frontier entries that
// were popped and discarded.
type AttackFinishedEvent struct {
	BaseEvent
	Conquered       int           `json:"conquered"`
	TroopsRemaining int           `json:"troops_remaining"`
	Skipped         int           `json:"skipped"`
	Duration        time.Duration `json:"duration"`
}

func NewAttackFinishedEvent(attackID string, conquered, remaining, skipped int, duration time.Duration) *AttackFinishedEvent {
	return &AttackFinishedEvent{
		BaseEvent:       newBase(TypeAttackFinished, attackID),
		Conquered:       conquered,
		TroopsRemaining: remaining,
		Skipped:         skipped,
		Duration:        duration,
	}
}
