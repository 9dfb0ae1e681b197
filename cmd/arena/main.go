// cmd/arena/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/crystal-raiders/pkg/audio"
	"github.com/opd-ai/crystal-raiders/pkg/config"
	"github.com/opd-ai/crystal-raiders/pkg/economy"
	"github.com/opd-ai/crystal-raiders/pkg/engine"
	"github.com/opd-ai/crystal-raiders/pkg/logging"
	"github.com/opd-ai/crystal-raiders/pkg/render"
	engorender "github.com/opd-ai/crystal-raiders/pkg/render/engo"
	"github.com/opd-ai/crystal-raiders/pkg/rng"
	"github.com/opd-ai/crystal-raiders/pkg/score"
	"github.com/opd-ai/crystal-raiders/pkg/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if err != nil {
		logging.NewLogger().Error(context.Background(), "Arena stopped", err)
		os.Exit(1)
	}
}

// run parses args, builds the game and plays it on the chosen front end.
// Logs go to stderr except under the terminal front end, which owns the
// screen and logs to a file instead.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	env, err := config.LoadConfigFromEnv()
	if err != nil {
		return logging.WrapError(err, "read environment")
	}

	fs := flag.NewFlagSet("arena", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", env.ConfigPath, "Path to a JSON or YAML tuning file")
	createDefault := fs.Bool("default", false, "Write the default tuning to -config and exit")
	rendererName := fs.String("renderer", env.Renderer, "Front end: 'terminal', 'engo' or 'null'")
	seed := fs.Uint64("seed", env.Seed, "Random seed, 0 seeds from the clock")
	width := fs.Float64("width", 0, "Arena width override")
	height := fs.Float64("height", 0, "Arena height override")
	logPath := fs.String("log", "crystal-raiders.log", "Log file for the terminal front end")
	mute := fs.Bool("mute", false, "Disable sound")
	volume := fs.Float64("volume", 0.8, "Master volume between 0 and 1")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	env.Renderer = *rendererName
	if err := config.ValidateEnvironmentConfig(env); err != nil {
		return logging.WrapError(err, "invalid settings")
	}

	// The terminal owns stdout and stderr while it runs.
	logOut := stderr
	if env.Renderer == config.RendererTerminal {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logging.WrapError(err, "open log file %s", *logPath)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewLoggerWithLevel(logOut, logging.ParseLevel(env.LogLevel))

	if *createDefault {
		if *configPath == "" {
			return errors.New("create default configuration: -config is required")
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			return logging.WrapError(err, "create default configuration")
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return nil
	}

	gameConfig, err := loadGameConfig(*configPath, *width, *height)
	if err != nil {
		return logging.WrapError(err, "load configuration %q", *configPath)
	}

	src := rng.NewFromTime()
	if *seed != 0 {
		src = rng.New(*seed)
	}

	game := engine.New(gameConfig,
		engine.WithStore(openStore(ctx, env.SaveApp, logger)),
		engine.WithRand(src),
		engine.WithLogger(logger),
		engine.WithContext(ctx),
	)
	logger.Info(ctx, "Arena ready",
		"renderer", env.Renderer,
		"seed", src.Seed(),
		"width", gameConfig.Arena.Width,
		"height", gameConfig.Arena.Height,
	)

	if !*mute && env.Renderer != config.RendererNull {
		player := audio.NewPlayer(audio.DefaultSampleRate, *volume, logger)
		if err := player.Initialize(); err != nil {
			logger.Warn(ctx, "Sound disabled", "error", err.Error())
		} else {
			player.Attach(game.Events())
			defer player.Close()
		}
	}

	switch env.Renderer {
	case config.RendererEngo:
		engorender.Run(game, logger)
	case config.RendererNull:
		err = runHeadless(ctx, game, env, logger)
	default:
		err = runTerminal(ctx, game, env)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadGameConfig reads the tuning file if one is given, then applies
// environment and flag overrides and validates the result.
func loadGameConfig(path string, width, height float64) (*config.GameConfig, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.ApplyEnvironmentOverrides(cfg)
	if width > 0 {
		cfg.Arena.Width = width
	}
	if height > 0 {
		cfg.Arena.Height = height
	}
	if err := validation.ValidateGameConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore returns the persistent best-score store behind a circuit
// breaker, or an in-memory store when the save directory is unusable.
func openStore(ctx context.Context, app string, logger *logging.Logger) score.Store {
	store, err := score.OpenGdataStore(app)
	if err != nil {
		logger.Warn(ctx, "Best score will not persist", "error", err.Error(), "app", app)
		return score.NewMemoryStore(0)
	}
	return score.NewGuardedStore(store, score.DefaultBreakerSettings(), logger)
}

// runTerminal plays in the current terminal until the player quits or ctx
// is cancelled.
func runTerminal(ctx context.Context, game *engine.Game, env *config.EnvironmentConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "init screen")
	}
	screen.EnableMouse()

	renderer := render.NewTerminalRenderer(screen, game.Snapshot().Arena)
	input := render.NewTerminalInput(renderer, render.DefaultLatch)

	ctx, quit := context.WithCancel(ctx)
	defer quit()
	grp, ctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		// PollEvent returns nil once the screen is finalized.
		for ev := screen.PollEvent(); ev != nil; ev = screen.PollEvent() {
			if !render.Dispatch(game, input.HandleEvent(ev)) {
				quit()
				return nil
			}
		}
		return nil
	})

	grp.Go(func() error {
		return engine.Loop(ctx, game, env.TickInterval(), input.Intent, func(snap engine.Snapshot) {
			input.Track(snap.Player.Position)
			var offers []economy.Offer
			if snap.State == engine.StateShopping {
				offers = game.Offers()
			}
			renderer.Draw(&snap, offers)
		})
	})

	grp.Go(func() error {
		<-ctx.Done()
		screen.Fini()
		return nil
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runHeadless plays one unattended run through the null renderer and
// returns at game over.
func runHeadless(ctx context.Context, game *engine.Game, env *config.EnvironmentConfig, logger *logging.Logger) error {
	ctx, done := context.WithCancel(ctx)
	defer done()

	renderer := render.NewNullRenderer(logger)
	game.StartRun()
	err := engine.Loop(ctx, game, env.TickInterval(), nil, func(snap engine.Snapshot) {
		snap.Render(renderer)
		if snap.State == engine.StateGameOver {
			logger.Info(ctx, "Run finished",
				"score", snap.FinalScore,
				"wave", snap.FinalWave,
				"frames", renderer.Frames(),
			)
			done()
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
