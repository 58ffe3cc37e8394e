package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/wordsolverx/postermaker/internal/indexing"
	"github.com/wordsolverx/postermaker/internal/ledger"
	"github.com/wordsolverx/postermaker/internal/poster"
	"github.com/wordsolverx/postermaker/internal/publish"
	"github.com/wordsolverx/postermaker/internal/render"
	"github.com/wordsolverx/postermaker/internal/state"
	"github.com/wordsolverx/postermaker/internal/theme"
)

func (app *App) publishers() []publish.Publisher {
	if app.Publishers != nil {
		return app.Publishers
	}
	cfg := app.Config
	return []publish.Publisher{
		&publish.Pinterest{Token: cfg.Pinterest.AccessToken, Sandbox: cfg.Pinterest.Sandbox},
		&publish.Facebook{Token: cfg.Facebook.AccessToken, PageID: cfg.Facebook.PageID},
	}
}

// kindFor picks the poster format a platform displays best: pins are tall,
// link cards are wide.
func kindFor(platform string) poster.Kind {
	if platform == "facebook" {
		return poster.Landscape
	}
	return poster.Portrait
}

// RunSocial renders today's posters for topic and publishes them to every
// configured platform. Platforms without credentials are skipped, as are
// platforms the ledger already has for today. A platform failure is logged
// and the remaining platforms still run; the first failure is returned.
func (app *App) RunSocial(ctx context.Context, topic string) ([]publish.Receipt, error) {
	log := app.log("social")
	th, ok := theme.Lookup(topic)
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownTopic, topic, theme.Keys())
	}
	now, err := app.today()
	if err != nil {
		return nil, err
	}
	day := now.Format(ledgerDay)
	date := indexing.DisplayDate(now)
	permalink := indexing.Permalink(app.Config.Site.BaseURL, th.Key, now)
	title := publish.Title(th.Name, date)
	topicCfg := app.Config.Topic(th.Key)

	var gradient *poster.Gradient
	if topicCfg.Color != "" {
		primary, err := render.ParseHex(topicCfg.Color)
		if err != nil {
			return nil, fmt.Errorf("topics.%s.color: %w", th.Key, err)
		}
		gradient = poster.PrimaryGradient(primary)
	}

	posters := map[poster.Kind][]byte{}
	var receipts []publish.Receipt
	var firstErr error
	for _, pub := range app.publishers() {
		name := pub.Name()
		if app.Ledger != nil {
			done, err := app.Ledger.Posted(ctx, th.Key, day, name)
			if err != nil {
				return receipts, err
			}
			if done {
				log.Info("already posted today, skipping", "platform", name, "topic", th.Key, "day", day)
				app.Store.Update(func(c *state.Counters) { c.Skipped++ })
				continue
			}
		}

		kind := kindFor(name)
		img, ok := posters[kind]
		if !ok {
			app.Store.SetPhase(state.RENDERING)
			img, err = app.Engine.Compose(ctx, poster.Request{Topic: th.Key, Date: date, Kind: kind, Gradient: gradient})
			if err != nil {
				return receipts, fmt.Errorf("render %s %s: %w", th.Key, kind, err)
			}
			posters[kind] = img
			app.Store.Update(func(c *state.Counters) { c.Rendered++ })
			log.Debug("poster rendered", "topic", th.Key, "kind", kind.String(), "bytes", len(img))
		}

		app.Store.SetPhase(state.PUBLISHING)
		description := publish.PinDescription(th.Name, permalink)
		if name == "facebook" {
			description = publish.FacebookCaption(title, th.Name, permalink)
		}
		rec, err := pub.Publish(ctx, publish.Post{
			Topic:       th.Key,
			Title:       title,
			Description: description,
			Link:        permalink,
			BoardID:     topicCfg.BoardID,
			Image:       img,
			ContentType: "image/png",
		})
		switch {
		case errors.Is(err, publish.ErrNotConfigured):
			log.Warn("platform not configured, skipping", "platform", name, "reason", err)
			app.Store.Update(func(c *state.Counters) { c.Skipped++ })
			continue
		case err != nil:
			if ctx.Err() != nil {
				return receipts, ctx.Err()
			}
			log.Error("publish failed", "platform", name, "topic", th.Key, "error", err)
			app.Store.Update(func(c *state.Counters) { c.Failed++ })
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		log.Info("posted", "platform", name, "topic", th.Key, "id", rec.ID, "url", rec.URL)
		app.Store.Update(func(c *state.Counters) { c.Published++ })
		receipts = append(receipts, rec)
		if app.Ledger != nil {
			err := app.Ledger.Record(ctx, ledger.Entry{
				Topic: th.Key, Day: day, Platform: name, RemoteID: rec.ID, URL: rec.URL,
			})
			if err != nil {
				return receipts, err
			}
		}
	}
	return receipts, firstErr
}
