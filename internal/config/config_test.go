package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	require.Equal(t, "PBH-BTN", cfg.Repo.Owner)
	require.Equal(t, "PeerBanHelper", cfg.Repo.Name)
	require.Equal(t, "https://api.github.com", cfg.APIURL)
	require.Equal(t, LogLevelInfo, cfg.LogLevel)

	require.Equal(t, "feeds", cfg.Generator.FeedsDir)
	require.Equal(t, 50, cfg.Generator.MaxEntries)
	require.Equal(t, "*.torrent", cfg.Generator.AssetPattern)
	require.Equal(t, "PeerBanHelper Releases", cfg.Generator.ChannelTitle)
	require.Equal(t, "https://github.com/PBH-BTN/PeerBanHelper/releases", cfg.Generator.ChannelLink)
	require.Len(t, cfg.Generator.Feeds, 4)
	require.Equal(t, "github.feed.xml", cfg.Generator.Feeds[0].FileName)
}

func TestSetDefaultsDerivedFromRepo(t *testing.T) {
	cfg := &Config{}
	cfg.Repo.Owner = "acme"
	cfg.Repo.Name = "widget"
	cfg.SetDefaults()

	require.Equal(t, "widget Releases", cfg.Generator.ChannelTitle)
	require.Equal(t, "https://github.com/acme/widget/releases", cfg.Generator.ChannelLink)
}

func TestMustLoad(t *testing.T) {
	content := `
repo:
  owner: acme
  name: widget
log_level: debug
input_file: releases.json
generator:
  feeds_dir: out
  max_entries: 10
  feeds:
    - filename: releases.xml
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("GITHUB_TOKEN", "secret")

	cfg := MustLoad(path)
	require.Equal(t, "acme", cfg.Repo.Owner)
	require.Equal(t, LogLevelDebug, cfg.LogLevel)
	require.Equal(t, "releases.json", cfg.InputFile)
	require.Equal(t, "out", cfg.Generator.FeedsDir)
	require.Equal(t, 10, cfg.Generator.MaxEntries)
	require.Len(t, cfg.Generator.Feeds, 1)
	require.Equal(t, "secret", cfg.Token)

	// Unset fields still fall back to defaults.
	require.Equal(t, "*.torrent", cfg.Generator.AssetPattern)
}

func TestMustLoadMissingFile(t *testing.T) {
	cfg := MustLoad(filepath.Join(t.TempDir(), "no-such.yml"))

	require.Equal(t, "PBH-BTN", cfg.Repo.Owner)
	require.Len(t, cfg.Generator.Feeds, 4)
}

func TestMustLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("repo: ["), 0644))

	require.Panics(t, func() {
		MustLoad(path)
	})
}
