package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	envToken = "GITHUB_TOKEN"

	defaultAPIURL        = "https://api.github.com"
	defaultOwner         = "PBH-BTN"
	defaultRepo          = "PeerBanHelper"
	defaultFeedsDir      = "feeds"
	defaultMaxEntries    = 50
	defaultAssetPattern  = "*.torrent"
	defaultMirrorPrefix  = "https://ghfast.top/"
	defaultCommitMessage = "Update release feeds"
)

// FeedConfig describes one feed variant to generate.
type FeedConfig struct {
	FileName           string `yaml:"filename"`
	IncludePrereleases bool   `yaml:"include_prereleases"`
	UseMirror          bool   `yaml:"use_mirror"`
}

type RepoConfig struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

type GeneratorConfig struct {
	FeedsDir     string       `yaml:"feeds_dir"`
	MaxEntries   int          `yaml:"max_entries"`
	AssetPattern string       `yaml:"asset_pattern"`
	MirrorPrefix string       `yaml:"mirror_prefix"`
	ChannelTitle string       `yaml:"channel_title"`
	ChannelLink  string       `yaml:"channel_link"`
	Feeds        []FeedConfig `yaml:"feeds"`
}

type PublishConfig struct {
	Enabled       bool   `yaml:"enabled"`
	CommitMessage string `yaml:"commit_message"`
}

type Config struct {
	Repo      RepoConfig      `yaml:"repo"`
	APIURL    string          `yaml:"api_url"`
	InputFile string          `yaml:"input_file"`
	LogLevel  string          `yaml:"log_level"`
	Generator GeneratorConfig `yaml:"generator"`
	Publish   PublishConfig   `yaml:"publish"`

	Token string `yaml:"-"` // From GITHUB_TOKEN, never from the config file
}

func (c *Config) SetDefaults() {
	if c.Repo.Owner == "" {
		c.Repo.Owner = defaultOwner
	}
	if c.Repo.Name == "" {
		c.Repo.Name = defaultRepo
	}
	if c.APIURL == "" {
		c.APIURL = defaultAPIURL
	}
	if c.LogLevel == "" {
		c.LogLevel = LogLevelInfo
	}

	g := &c.Generator
	if g.FeedsDir == "" {
		g.FeedsDir = defaultFeedsDir
	}
	if g.MaxEntries == 0 {
		g.MaxEntries = defaultMaxEntries
	}
	if g.AssetPattern == "" {
		g.AssetPattern = defaultAssetPattern
	}
	if g.MirrorPrefix == "" {
		g.MirrorPrefix = defaultMirrorPrefix
	}
	if g.ChannelTitle == "" {
		g.ChannelTitle = fmt.Sprintf("%s Releases", c.Repo.Name)
	}
	if g.ChannelLink == "" {
		g.ChannelLink = fmt.Sprintf("https://github.com/%s/%s/releases", c.Repo.Owner, c.Repo.Name)
	}
	if len(g.Feeds) == 0 {
		g.Feeds = []FeedConfig{
			{FileName: "github.feed.xml"},
			{FileName: "github.feed.prerelease.xml", IncludePrereleases: true},
			{FileName: "mirror.feed.xml", UseMirror: true},
			{FileName: "mirror.feed.prerelease.xml", IncludePrereleases: true, UseMirror: true},
		}
	}

	if c.Publish.CommitMessage == "" {
		c.Publish.CommitMessage = defaultCommitMessage
	}
}

// MustLoad reads the config file, applies defaults and the environment
// overlay. A missing file is fine (defaults apply), a broken one is not
// recoverable for a batch run.
func MustLoad(path string) *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(fmt.Sprintf("cannot parse config file %s: %s", path, err))
		}
	case os.IsNotExist(err):
	default:
		panic(fmt.Sprintf("cannot read config file %s: %s", path, err))
	}

	cfg.SetDefaults()
	cfg.Token = os.Getenv(envToken)

	if _, err := filepath.Match(cfg.Generator.AssetPattern, ""); err != nil {
		panic(fmt.Sprintf("bad asset pattern %q: %s", cfg.Generator.AssetPattern, err))
	}

	return cfg
}
