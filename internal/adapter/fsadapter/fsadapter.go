package fsadapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jgivc/releasefeed/internal/common"
	"github.com/jgivc/releasefeed/internal/entity"
	"github.com/jgivc/releasefeed/internal/rss"
	"github.com/jgivc/releasefeed/internal/util"
	"github.com/spf13/afero"
)

const (
	feedsDirPerm = 0o755
	feedFilePerm = 0o644
)

type fsAdapter struct {
	fs       afero.Fs
	feedsDir string
	log      *slog.Logger
}

func NewFSAdapter(feedsDir string, log *slog.Logger) *fsAdapter {
	return NewFSAdapterWithFS(afero.NewOsFs(), feedsDir, log)
}

func NewFSAdapterWithFS(fs afero.Fs, feedsDir string, log *slog.Logger) *fsAdapter {
	return &fsAdapter{
		fs:       fs,
		feedsDir: feedsDir,
		log:      log.With(slog.String("item", "FSAdapter")),
	}
}

// ReadReleases loads a pre-fetched releases JSON document. Unparseable
// input is fatal: the run must not publish an empty feed over it.
func (a *fsAdapter) ReadReleases(path string) ([]*entity.Release, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read releases file %s: %w", path, err)
	}

	var releases []*entity.Release
	if err := json.Unmarshal(data, &releases); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", common.ErrInputUnreadable, path, err)
	}

	a.log.Info("Read releases", slog.String("path", path), slog.Int("count", len(releases)))

	return releases, nil
}

// WriteFeeds serializes every feed under the feeds directory, creating
// it if absent, and returns the paths whose content actually changed.
// Unchanged files are left alone so the working tree stays clean.
func (a *fsAdapter) WriteFeeds(feeds []*entity.Feed) ([]string, error) {
	if err := a.fs.MkdirAll(a.feedsDir, feedsDirPerm); err != nil {
		return nil, fmt.Errorf("cannot create feeds dir %s: %w", a.feedsDir, err)
	}

	var written []string
	for _, feed := range feeds {
		path := filepath.Join(a.feedsDir, feed.FileName)

		data, err := rss.Marshal(feed)
		if err != nil {
			return nil, fmt.Errorf("cannot serialize feed %s: %w", feed.FileName, err)
		}

		if a.unchanged(path, data) {
			a.log.Info("Feed unchanged", slog.String("path", path))

			continue
		}

		if err := afero.WriteFile(a.fs, path, data, feedFilePerm); err != nil {
			return nil, fmt.Errorf("cannot write feed %s: %w", path, err)
		}

		a.log.Info("Wrote feed", slog.String("path", path), slog.Int("items", len(feed.Items)))
		written = append(written, path)
	}

	return written, nil
}

func (a *fsAdapter) unchanged(path string, data []byte) bool {
	old, err := afero.ReadFile(a.fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			a.log.Warn("Cannot read existing feed", slog.String("path", path), slog.Any("error", err))
		}

		return false
	}

	return util.ContentHash(old) == util.ContentHash(data)
}
