package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jgivc/releasefeed/internal/adapter/fsadapter"
	"github.com/jgivc/releasefeed/internal/adapter/ghadapter"
	"github.com/jgivc/releasefeed/internal/adapter/mdadapter"
	"github.com/jgivc/releasefeed/internal/config"
	"github.com/jgivc/releasefeed/internal/entity"
	"github.com/jgivc/releasefeed/internal/publisher"
	sfeed "github.com/jgivc/releasefeed/internal/service/feed"
)

type App struct {
	cfgPath string
}

func New(cfgPath string) *App {
	return &App{
		cfgPath: cfgPath,
	}
}

// Run executes one generation pass: load releases, generate the feed
// variants, write them, publish what changed. Errors carry the failing
// stage so a scheduled run reports where it died.
func (a *App) Run(ctx context.Context) error {
	cfg := config.MustLoad(a.cfgPath)

	lo := &slog.HandlerOptions{}
	switch cfg.LogLevel {
	case config.LogLevelInfo:
		lo.Level = slog.LevelInfo
	case config.LogLevelWarn:
		lo.Level = slog.LevelWarn
	case config.LogLevelError:
		lo.Level = slog.LevelError
	case config.LogLevelDebug:
		lo.Level = slog.LevelDebug
	default:
		panic("unknown log level")
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, lo))

	fsa := fsadapter.NewFSAdapter(cfg.Generator.FeedsDir, log)

	releases, err := a.loadReleases(ctx, cfg, fsa, log)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	srv := sfeed.NewFeedService(&cfg.Generator, mdadapter.NewRenderer(log), log)

	feeds, err := srv.Generate(releases)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	written, err := fsa.WriteFeeds(feeds)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	if cfg.Publish.Enabled {
		pub := publisher.NewGitPublisher(cfg.Publish.CommitMessage, log)
		if err := pub.Publish(ctx, written); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}

	return nil
}

type releaseReader interface {
	ReadReleases(path string) ([]*entity.Release, error)
}

func (a *App) loadReleases(ctx context.Context, cfg *config.Config, reader releaseReader, log *slog.Logger) ([]*entity.Release, error) {
	if cfg.InputFile != "" {
		return reader.ReadReleases(cfg.InputFile)
	}

	fetcher := ghadapter.NewReleaseFetcher(cfg.APIURL, cfg.Repo.Owner, cfg.Repo.Name, cfg.Token, log)

	return fetcher.Fetch(ctx)
}
