package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/conquestreplay/internal/config"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/conquest"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/core"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/events"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/mapgen"
	"github.com/mitchelldurbincs/conquestreplay/internal/replay"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Error().Err(err).Msg("Demo failed")
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	width := fs.Int("width", 0, "Map width (0 to use config default)")
	height := fs.Int("height", 0, "Map height (0 to use config default)")
	mapSeed := fs.Int64("map-seed", -1, "Map generation seed (-1 to use config default)")
	seed := fs.Int64("seed", -1, "Attack seed (-1 to use config default)")
	troops := fs.Int("troops", -1, "Troops committed to the attack (-1 to use config default)")
	defender := fs.String("defender", "", "Player to attack (empty attacks unclaimed territory)")
	save := fs.String("save", "", "Write the generated map and attack as a replay scenario")
	noColor := fs.Bool("no-color", false, "Disable ANSI colors")
	logLevel := fs.String("log-level", "", "Log level (empty to use config default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	cfg := config.Get()

	logCfg := cfg.Logging
	if *logLevel != "" {
		logCfg.Level = *logLevel
	}
	logger := config.NewLogger(logCfg, stderr)
	log.Logger = logger

	demo := cfg.Demo
	if *width > 0 {
		demo.Width = *width
	}
	if *height > 0 {
		demo.Height = *height
	}
	if *mapSeed >= 0 {
		demo.MapSeed = uint64(*mapSeed)
	}
	attackSeed := cfg.Simulation.DefaultSeed
	if *seed >= 0 {
		attackSeed = *seed
	}
	attackTroops := cfg.Simulation.DefaultTroops
	if *troops >= 0 {
		attackTroops = *troops
	}

	players := make([]core.PlayerID, 0, len(demo.Players))
	for _, p := range demo.Players {
		players = append(players, core.PlayerID(p))
	}
	if len(players) < 1 {
		return errors.New("demo needs at least one player")
	}

	mc := mapgen.DefaultMapConfig(demo.Width, demo.Height, players)
	mc.MountainVeins = demo.MountainVeins
	mc.HighlandChance = demo.HighlandChance
	mc.MinSpawnSpacing = demo.MinSpawnSpacing
	mc.SpawnRadius = demo.SpawnRadius

	m, err := mapgen.NewSeededGenerator(mc, demo.MapSeed).GenerateMap()
	if err != nil {
		return fmt.Errorf("generate map: %w", err)
	}

	attack := conquest.Attack{
		Source:   m.Spawns[0].Tile,
		Attacker: m.Spawns[0].Player,
		Defender: core.PlayerID(*defender),
		Troops:   attackTroops,
	}
	if attack.Defender == attack.Attacker {
		return fmt.Errorf("%s cannot attack itself", attack.Attacker)
	}
	// The spawn sits inside the attacker's territory; start from an edge
	// tile that touches the target instead.
	if border := m.State.BorderTiles(attack.Attacker, attack.Defender); len(border) > 0 {
		attack.Source = border[0]
	} else {
		logger.Warn().
			Str("attacker", attack.Attacker.String()).
			Str("defender", attack.Defender.String()).
			Msg("Attacker does not border the defender; nothing can be conquered")
	}

	logger.Info().
		Int("width", demo.Width).
		Int("height", demo.Height).
		Uint64("map_seed", demo.MapSeed).
		Str("attacker", attack.Attacker.String()).
		Str("defender", attack.Defender.String()).
		Msg("Generated demo map")

	if *save != "" {
		s := replay.FromMapState(fmt.Sprintf("demo-%dx%d-%d", demo.Width, demo.Height, demo.MapSeed), m.State, attack, attackSeed)
		if err := replay.Save(*save, s); err != nil {
			return err
		}
		logger.Info().Str("path", *save).Msg("Saved scenario")
	}

	opts := mapgen.RenderOptions{Color: !*noColor && !logCfg.NoColor}
	fmt.Fprintln(stdout, "before:")
	fmt.Fprint(stdout, mapgen.Render(m.Grid, m.State, players, opts))

	after := m.State.Clone()
	bus := events.NewEventBusWithLogger(logger)
	recorder := events.NewRecorder("demo", events.TypeTileConquered)
	bus.Subscribe(recorder)

	sim := conquest.NewSimulator(after, attack, conquest.Config{
		Seed:       attackSeed,
		Logger:     logger,
		Publisher:  bus,
		TraceSkips: cfg.Logging.TraceSkips,
	})
	out := sim.Run()

	opts.Conquered = out.Conquered
	fmt.Fprintln(stdout, "after:")
	fmt.Fprint(stdout, mapgen.Render(m.Grid, after, players, opts))
	fmt.Fprintf(stdout, "%s took %d tiles from %s: %v (%d troops left)\n",
		attack.Attacker, len(recorder.Events()), attack.Defender, out.Conquered, out.TroopsRemaining)
	return nil
}
