package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wordsolverx/postermaker/internal/app"
	"github.com/wordsolverx/postermaker/internal/config"
	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/ledger"
	"github.com/wordsolverx/postermaker/internal/logger"
	"github.com/wordsolverx/postermaker/internal/poster"
	"github.com/wordsolverx/postermaker/internal/state"
)

const envStdioLog = "POSTERMAKER_STDIO_LOG"

func main() {
	configPath := flag.String("config", config.DefaultPath, "path of the TOML config file")
	action := flag.String("action", "", "job to run: indexing | social | render; overrides ACTION")
	topic := flag.String("topic", "", "puzzle topic for the social action; overrides PUZZLE_TYPE")
	outDir := flag.String("out", "", "output directory for the render action")
	debug := flag.Bool("debug", false, "enable debug logging")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	flag.Parse()

	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	if err := run(*configPath, *action, *topic, *outDir, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "postermaker:", err)
		os.Exit(1)
	}
}

func run(configPath, action, topic, outDir string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if action != "" {
		cfg.Job.Action = action
	}
	if topic != "" {
		cfg.Job.Topic = topic
	}
	if outDir != "" {
		cfg.Job.OutDir = outDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.Log.Level)
	if debug && level > logger.LevelDebug {
		level = logger.LevelDebug
	}
	log, closer := logger.New(logger.Options{Level: level, File: cfg.Log.File, MaxSizeMB: cfg.Log.MaxSizeMB})
	defer closer.Close()
	log.Info("postermaker starting", "action", cfg.Job.Action, "topic", cfg.Job.Topic)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, err := cfg.FontSources(nil)
	if err != nil {
		return err
	}
	library := fonts.NewLibrary(sources)
	if err := library.Warm(ctx); err != nil {
		// Renders fall back to the built-in face for a family that failed.
		logger.Component(log, "fonts").Warn("font warmup failed", "error", err)
	}

	engine := poster.NewEngine(library)
	engine.Workers = cfg.Render.Workers
	engine.FontTimeout = cfg.FontTimeout()
	engine.Logger = logger.Component(log, "render")

	a := app.New(cfg, engine, state.NewStore(cfg.Job.Action))
	a.Logger = log
	if cfg.Ledger.Path != "" {
		l, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer l.Close()
		a.Ledger = l
	}
	return a.Run(ctx)
}
