package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/conquestreplay/internal/config"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/conquest"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/events"
	"github.com/mitchelldurbincs/conquestreplay/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/conquestreplay/internal/replay"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Error().Err(err).Msg("Replay failed")
		os.Exit(1)
	}
}

// options are the per-invocation overrides taken from flags.
type options struct {
	scenario string
	seed     int64
	troops   int
	record   bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	env := fs.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	scenarioPath := fs.String("scenario", "", "Scenario file (relative paths resolve against replay.scenario_dir)")
	seed := fs.Int64("seed", -1, "Override the scenario seed (-1 to keep it)")
	troops := fs.Int("troops", -1, "Override the scenario troop count (-1 to keep it)")
	logLevel := fs.String("log-level", "", "Log level (trace, debug, info, warn, error) (empty to use config default)")
	record := fs.Bool("record", false, "Write the produced conquest order back into the scenario as expected")
	watch := fs.Bool("watch", false, "Replay again whenever the config file changes, until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenarioPath == "" {
		return errors.New("-scenario is required")
	}
	if *watch && *record {
		return errors.New("-watch and -record cannot be combined")
	}

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		return err
	}
	if *logLevel != "" {
		// Flag overrides outlive config reloads.
		config.Set("logging.level", *logLevel)
	}

	opts := options{scenario: *scenarioPath, seed: *seed, troops: *troops, record: *record}
	err := replayOnce(opts, stdout, stderr)
	if !*watch {
		return err
	}
	if err != nil {
		log.Error().Err(err).Msg("Replay failed")
	}

	if config.ConfigFilePath() == "" {
		return errors.New("-watch needs a config file")
	}

	var mu sync.Mutex
	config.WatchConfig(func() {
		mu.Lock()
		defer mu.Unlock()
		log.Info().Str("config", config.ConfigFilePath()).Msg("Config changed, replaying")
		if err := replayOnce(opts, stdout, stderr); err != nil {
			log.Error().Err(err).Msg("Replay failed")
		}
	})

	<-ctx.Done()
	return nil
}

// replayOnce loads the scenario and replays it under the current config.
func replayOnce(opts options, stdout, stderr io.Writer) error {
	cfg := config.Get()
	logger := config.NewLogger(cfg.Logging, stderr)
	log.Logger = logger

	path := opts.scenario
	if !filepath.IsAbs(path) && cfg.Replay.ScenarioDir != "" {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(cfg.Replay.ScenarioDir, path)
		}
	}

	scenario, err := replay.Load(path)
	if err != nil {
		return err
	}
	if opts.seed >= 0 {
		s := opts.seed
		scenario.Attack.Seed = &s
		scenario.Expected = nil
	}
	if opts.troops >= 0 {
		scenario.Attack.Troops = opts.troops
		scenario.Expected = nil
	}
	if !cfg.Replay.Verify && !opts.record {
		scenario.Expected = nil
	}

	simCfg := conquest.Config{
		Logger:     logger,
		TraceSkips: cfg.Logging.TraceSkips,
	}
	if cfg.Simulation.PublishEvents {
		var bus events.Bus = events.NewEventBusWithLogger(logger)
		eventLogger := subscribers.NewLoggerSubscriber("replay-log", logger, zerolog.DebugLevel)
		eventLogger.SetDevMode(cfg.Logging.Level == "trace")
		bus.Subscribe(eventLogger)
		simCfg.Publisher = bus
	}

	var res *replay.Result
	if opts.record {
		res, err = replay.Record(scenario, simCfg)
	} else {
		res, err = replay.Run(scenario, simCfg)
	}
	if res != nil {
		printOutcome(stdout, scenario, res)
	}
	if err != nil {
		return err
	}

	if opts.record {
		if err := replay.Save(path, scenario); err != nil {
			return err
		}
		logger.Info().Str("scenario", path).Int("expected", len(scenario.Expected)).Msg("Recorded conquest order")
	}
	return nil
}

func printOutcome(w io.Writer, s *replay.Scenario, res *replay.Result) {
	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "scenario:  %s\n", name)
	fmt.Fprintf(w, "attack:    %s -> %s from tile %d, %d troops, seed %d\n",
		s.Attack.Attacker, s.Attack.Defender, s.Attack.Source, s.Attack.Troops, s.Seed())
	fmt.Fprintf(w, "conquered: %v\n", res.Outcome.Conquered)
	fmt.Fprintf(w, "remaining: %d\n", res.Outcome.TroopsRemaining)
}
