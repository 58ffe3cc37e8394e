package app

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/wordsolverx/postermaker/internal/atomicfile"
	"github.com/wordsolverx/postermaker/internal/indexing"
	"github.com/wordsolverx/postermaker/internal/poster"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/state"
	"github.com/wordsolverx/postermaker/internal/theme"
)

type batchJob struct {
	topic string
	kind  poster.Kind
	path  string
}

// RenderBatch writes today's portrait and landscape posters for topics
// (every registered topic when empty) into outDir, rendering concurrently.
// It returns the written paths in topic, kind order.
func (app *App) RenderBatch(ctx context.Context, outDir string, topics []string) ([]string, error) {
	log := app.log("render")
	if len(topics) == 0 {
		topics = theme.Keys()
	}
	now, err := app.today()
	if err != nil {
		return nil, err
	}
	date := indexing.DisplayDate(now)
	stamp := indexing.URLDate(now)

	var jobs []batchJob
	for _, topic := range topics {
		for _, kind := range []poster.Kind{poster.Portrait, poster.Landscape} {
			name := fmt.Sprintf("%s-%s-%s.png", topic, kind, stamp)
			jobs = append(jobs, batchJob{topic: topic, kind: kind, path: filepath.Join(outDir, name)})
		}
	}

	app.Store.SetPhase(state.RENDERING)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(jobs))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job batchJob) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = app.renderOne(ctx, job, date)
			if errs[i] != nil {
				cancel()
			}
		}(i, job)
	}
	wg.Wait()

	paths := make([]string, 0, len(jobs))
	for i, job := range jobs {
		if errs[i] != nil {
			return nil, fmt.Errorf("render %s %s: %w", job.topic, job.kind, errs[i])
		}
		paths = append(paths, job.path)
	}
	log.Info("posters written", "count", len(paths), "dir", outDir)
	return paths, nil
}

func (app *App) renderOne(ctx context.Context, job batchJob, date string) error {
	req := poster.Request{Topic: job.topic, Date: date, Kind: job.kind}
	if c := app.Config.Topic(job.topic).Color; c != "" {
		primary, err := render.ParseHex(c)
		if err != nil {
			return err
		}
		req.Gradient = poster.PrimaryGradient(primary)
	}
	img, err := app.Engine.Compose(ctx, req)
	if err != nil {
		return err
	}
	if err := atomicfile.Write(job.path, img, 0o644); err != nil {
		return err
	}
	app.Store.Update(func(c *state.Counters) { c.Rendered++ })
	app.log("render").Debug("poster written", "path", job.path)
	return nil
}
