package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wordsolverx/postermaker/internal/indexing"
	"github.com/wordsolverx/postermaker/internal/state"
	"github.com/wordsolverx/postermaker/internal/theme"
)

// URLs gathers the day's dynamic answer pages plus the static page list,
// minus excluded paths.
func (app *App) URLs(now time.Time) ([]string, error) {
	cfg := app.Config
	urls := indexing.DynamicURLs(cfg.Site.BaseURL, theme.Keys(), now)
	pages, err := indexing.LoadPages(cfg.Indexing.PagesFile)
	if err != nil {
		return nil, err
	}
	return indexing.Filter(append(urls, pages...), cfg.Indexing.Exclude), nil
}

func (app *App) submitter(ctx context.Context) (*indexing.Submitter, error) {
	if app.Submitter != nil {
		return app.Submitter, nil
	}
	key, err := indexing.ServiceAccountKey(app.Config.Indexing.ServiceAccountJSON, app.Config.Indexing.ServiceAccountFile)
	if err != nil {
		return nil, err
	}
	ts, err := indexing.TokenSource(ctx, key)
	if err != nil {
		return nil, err
	}
	s := indexing.NewSubmitter(ctx, ts)
	s.Logger = app.log("indexing")
	return s, nil
}

// RunIndexing submits today's URLs to the Indexing API. Missing
// credentials end the job without error.
func (app *App) RunIndexing(ctx context.Context) (indexing.Summary, error) {
	log := app.log("indexing")
	app.Store.SetPhase(state.INDEXING)

	sub, err := app.submitter(ctx)
	if errors.Is(err, indexing.ErrNoCredentials) {
		log.Warn("no service account credentials, skipping indexing")
		return indexing.Summary{}, nil
	}
	if err != nil {
		return indexing.Summary{}, err
	}

	now, err := app.today()
	if err != nil {
		return indexing.Summary{}, err
	}
	urls, err := app.URLs(now)
	if err != nil {
		return indexing.Summary{}, err
	}
	day := now.Format(ledgerDay)
	if app.Ledger != nil {
		pending, err := app.Ledger.Unindexed(ctx, urls, day)
		if err != nil {
			return indexing.Summary{}, err
		}
		if skipped := len(urls) - len(pending); skipped > 0 {
			log.Info("already submitted today", "count", skipped)
			app.Store.Update(func(c *state.Counters) { c.Skipped += skipped })
		}
		urls = pending
	}
	log.Info("submitting urls", "count", len(urls))

	sum, err := sub.SubmitAll(ctx, urls)
	app.Store.Update(func(c *state.Counters) {
		c.Submitted += sum.Submitted
		c.Failed += len(sum.Failed)
	})
	if app.Ledger != nil {
		failed := make(map[string]bool, len(sum.Failed))
		for _, f := range sum.Failed {
			failed[f.URL] = true
		}
		// SubmitAll stops early only on cancellation, so the first
		// Submitted+len(Failed) urls were attempted.
		attempted := urls[:sum.Submitted+len(sum.Failed)]
		at := time.Now()
		for _, u := range attempted {
			if failed[u] {
				continue
			}
			if err := app.Ledger.MarkIndexed(context.WithoutCancel(ctx), u, day, at); err != nil {
				return sum, err
			}
		}
	}
	if err != nil {
		return sum, fmt.Errorf("indexing interrupted: %w", err)
	}
	log.Info("indexing finished", "submitted", sum.Submitted, "failed", len(sum.Failed))
	return sum, nil
}
