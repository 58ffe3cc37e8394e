// Command preview serves posters over HTTP for checking layouts in a
// browser before they are published.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/wordsolverx/postermaker/internal/config"
	"github.com/wordsolverx/postermaker/internal/fonts"
	"github.com/wordsolverx/postermaker/internal/logger"
	"github.com/wordsolverx/postermaker/internal/poster"
	"github.com/wordsolverx/postermaker/internal/web"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path of the TOML config file")
	listenAddr := flag.String("listen", "", "http listen address; also configurable via "+config.EnvListenAddr)
	devMode := flag.Bool("dev", false, "enable permissive CORS; also configurable via "+config.EnvDevMode)
	flag.Parse()

	if err := run(*configPath, *listenAddr, *devMode); err != nil {
		fmt.Fprintln(os.Stderr, "preview:", err)
		os.Exit(1)
	}
}

func run(configPath, listenAddr string, devMode bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.Listen = listenAddr
	}
	if devMode {
		cfg.Server.Dev = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	sc, err := web.ServerConfigFrom(cfg)
	if err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.Log.Level)
	log, closer := logger.New(logger.Options{Level: level, File: cfg.Log.File, MaxSizeMB: cfg.Log.MaxSizeMB})
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, err := cfg.FontSources(nil)
	if err != nil {
		return err
	}
	library := fonts.NewLibrary(sources)
	if err := library.Warm(ctx); err != nil {
		logger.Component(log, "fonts").Warn("font warmup failed", "error", err)
	}
	engine := poster.NewEngine(library)
	engine.Workers = cfg.Render.Workers
	engine.FontTimeout = cfg.FontTimeout()
	engine.Logger = logger.Component(log, "render")

	if !sc.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	api := &web.API{
		Engine:   engine,
		BaseURL:  sc.BaseURL,
		Location: sc.Location,
		Logger:   logger.Component(log, "web"),
	}
	server := web.NewHTTPServer(sc.ListenAddr, web.NewRouter(api, sc.DevMode))
	server.Logger = api.Logger
	if err := server.Start(ctx); err != nil {
		return err
	}
	log.Info("preview listening", "addr", server.ListenAddr(), "dev", sc.DevMode)

	<-ctx.Done()
	return server.Stop()
}
