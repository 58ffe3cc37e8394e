// Package app runs the daily jobs: URL indexing, social posting and batch
// poster rendering.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wordsolverx/postermaker/internal/config"
	"github.com/wordsolverx/postermaker/internal/indexing"
	"github.com/wordsolverx/postermaker/internal/ledger"
	"github.com/wordsolverx/postermaker/internal/logger"
	"github.com/wordsolverx/postermaker/internal/poster"
	"github.com/wordsolverx/postermaker/internal/publish"
	"github.com/wordsolverx/postermaker/internal/state"
)

// ErrUnknownTopic is returned by the social job for a topic outside the
// theme registry.
var ErrUnknownTopic = errors.New("unknown topic")

// ledgerDay is the ledger's day key.
const ledgerDay = "2006-01-02"

type App struct {
	Config *config.Config
	Engine *poster.Engine
	Store  *state.Store
	// Ledger is optional; without it every run publishes and submits
	// everything.
	Ledger *ledger.Ledger
	Logger *slog.Logger

	// Publishers defaults to Pinterest and Facebook built from Config.
	Publishers []publish.Publisher
	// Submitter defaults to one authorized with the configured service
	// account.
	Submitter *indexing.Submitter
	// Now defaults to time.Now.
	Now func() time.Time
}

func New(cfg *config.Config, engine *poster.Engine, store *state.Store) *App {
	return &App{Config: cfg, Engine: engine, Store: store, Logger: slog.Default()}
}

func (app *App) log(component string) *slog.Logger {
	l := app.Logger
	if l == nil {
		l = slog.Default()
	}
	return logger.Component(l, component)
}

// today is the current time in the site time zone.
func (app *App) today() (time.Time, error) {
	loc, err := app.Config.Location()
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now
	if app.Now != nil {
		now = app.Now
	}
	return now().In(loc), nil
}

// Run executes the configured action and records the outcome in Store.
func (app *App) Run(ctx context.Context) error {
	var err error
	switch app.Config.Job.Action {
	case config.ActionIndexing:
		_, err = app.RunIndexing(ctx)
	case config.ActionSocial:
		_, err = app.RunSocial(ctx, app.Config.Job.Topic)
	case config.ActionRender:
		_, err = app.RenderBatch(ctx, app.Config.Job.OutDir, nil)
	default:
		err = fmt.Errorf("unknown action %q", app.Config.Job.Action)
	}
	app.Store.Finish(err)

	snap := app.Store.Snapshot()
	app.log("app").Info("job finished",
		"action", snap.Action,
		"phase", snap.Phase.String(),
		"elapsed", snap.Elapsed().Round(time.Millisecond),
		"rendered", snap.Counters.Rendered,
		"published", snap.Counters.Published,
		"skipped", snap.Counters.Skipped,
		"submitted", snap.Counters.Submitted,
		"failed", snap.Counters.Failed)
	return err
}
