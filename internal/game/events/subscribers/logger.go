package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/conquestreplay/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs attack events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.TraceLevel:
		logEvent = ls.logger.Trace()
	case zerolog.DebugLevel:
		logEvent = ls.logger.Debug()
	case zerolog.WarnLevel:
		logEvent = ls.logger.Warn()
	case zerolog.ErrorLevel:
		logEvent = ls.logger.Error()
	default:
		logEvent = ls.logger.Info()
	}

	logEvent.
		Str("event_type", event.Type()).
		Str("attack_id", event.AttackID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.AttackStartedEvent:
		logEvent.
			Int("source", int(e.Source)).
			Str("attacker", e.Attacker.String()).
			Str("defender", e.Defender.String()).
			Int("troops", e.Troops).
			Int64("seed", e.Seed)

	case *events.TileConqueredEvent:
		logEvent.
			Int("tile", int(e.Tile)).
			Int("order", e.Order).
			Float64("priority", e.Priority).
			Str("previous_owner", e.PreviousOwner.String()).
			Int("troops_remaining", e.TroopsRemaining)

	case *events.AttackFinishedEvent:
		logEvent.
			Int("conquered", e.Conquered).
			Int("troops_remaining", e.TroopsRemaining).
			Int("skipped", e.Skipped).
			Dur("duration", e.Duration)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Attack event")
}
