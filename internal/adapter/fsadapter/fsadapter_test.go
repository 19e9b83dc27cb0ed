package fsadapter

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jgivc/releasefeed/internal/common"
	"github.com/jgivc/releasefeed/internal/entity"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const feedsDir = "/data/feeds"

func testAdapter(t *testing.T) (*fsAdapter, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	return NewFSAdapterWithFS(fs, feedsDir, log), fs
}

func TestReadReleases(t *testing.T) {
	adapter, fs := testAdapter(t)

	content := `[{"tag_name":"v1.0","published_at":"2024-01-01T00:00:00Z","body":"notes",
		"assets":[{"name":"a.torrent","browser_download_url":"https://x/a.torrent",
		"size":512,"content_type":"application/x-bittorrent"}]}]`
	require.NoError(t, afero.WriteFile(fs, "/data/releases.json", []byte(content), 0644))

	releases, err := adapter.ReadReleases("/data/releases.json")
	require.NoError(t, err)
	require.Len(t, releases, 1)

	rel := releases[0]
	require.Equal(t, "v1.0", rel.TagName)
	require.True(t, rel.PublishedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Len(t, rel.Assets, 1)
	require.Equal(t, "a.torrent", rel.Assets[0].Name)
	require.EqualValues(t, 512, rel.Assets[0].Size)
}

func TestReadReleasesBadJSON(t *testing.T) {
	adapter, fs := testAdapter(t)

	require.NoError(t, afero.WriteFile(fs, "/data/releases.json", []byte("not json at all"), 0644))

	_, err := adapter.ReadReleases("/data/releases.json")
	require.ErrorIs(t, err, common.ErrInputUnreadable)
}

func TestReadReleasesMissingFile(t *testing.T) {
	adapter, _ := testAdapter(t)

	_, err := adapter.ReadReleases("/data/releases.json")
	require.Error(t, err)
}

func TestWriteFeeds(t *testing.T) {
	adapter, fs := testAdapter(t)

	feed := &entity.Feed{
		FileName:    "github.feed.xml",
		Title:       "Releases",
		Link:        "https://example.com/releases",
		Description: "Releases",
		Items: []*entity.Item{
			{
				Title:   "v1.0 (a.torrent)",
				Link:    "https://x/a.torrent",
				GUID:    "guid-v1-0",
				PubDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	written, err := adapter.WriteFeeds([]*entity.Feed{feed})
	require.NoError(t, err, "missing feeds dir must be created")
	require.Equal(t, []string{filepath.Join(feedsDir, "github.feed.xml")}, written)

	data, err := afero.ReadFile(fs, filepath.Join(feedsDir, "github.feed.xml"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8"?>`))
	require.Contains(t, string(data), "<guid isPermaLink=\"false\">guid-v1-0</guid>")
}

func TestWriteFeedsSkipsUnchanged(t *testing.T) {
	adapter, _ := testAdapter(t)

	feed := &entity.Feed{
		FileName:    "github.feed.xml",
		Title:       "Releases",
		Link:        "https://example.com/releases",
		Description: "Releases",
	}

	written, err := adapter.WriteFeeds([]*entity.Feed{feed})
	require.NoError(t, err)
	require.Len(t, written, 1)

	written, err = adapter.WriteFeeds([]*entity.Feed{feed})
	require.NoError(t, err)
	require.Empty(t, written, "identical content must not be rewritten")

	feed.Items = append(feed.Items, &entity.Item{
		Title:   "v1.0 (a.torrent)",
		Link:    "https://x/a.torrent",
		GUID:    "guid-v1-0",
		PubDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	written, err = adapter.WriteFeeds([]*entity.Feed{feed})
	require.NoError(t, err)
	require.Len(t, written, 1)
}
