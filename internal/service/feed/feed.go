package feed

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/jgivc/releasefeed/internal/common"
	"github.com/jgivc/releasefeed/internal/config"
	"github.com/jgivc/releasefeed/internal/entity"
)

const (
	mirrorTitleSuffix     = " [Mirror]"
	prereleaseTitleSuffix = " (Including Pre-releases)"
)

type DescriptionRenderer interface {
	Render(body string) string
}

type FeedService struct {
	cfg *config.GeneratorConfig
	md  DescriptionRenderer
	log *slog.Logger
}

func NewFeedService(cfg *config.GeneratorConfig, md DescriptionRenderer, log *slog.Logger) *FeedService {
	return &FeedService{
		cfg: cfg,
		md:  md,
		log: log.With(slog.String("item", "FeedService")),
	}
}

// Generate maps releases onto the configured feed variants. One item is
// produced per asset matching the asset pattern. Drafts, releases
// missing a tag or publish time, and releases with no matching assets
// are skipped with a warning; a single bad record never aborts the
// rest. All-skipped input still yields valid zero-item feeds.
//
// Output is a pure function of the input: item order is newest-first
// with tag and asset name as tiebreakers, and identifiers are derived
// from release tag and asset name, so reruns on identical input
// produce identical feeds.
func (s *FeedService) Generate(releases []*entity.Release) ([]*entity.Feed, error) {
	if len(s.cfg.Feeds) == 0 {
		return nil, common.ErrNoFeedsConfigured
	}

	valid := s.filterReleases(releases)

	descriptions := make(map[string]string, len(valid))
	for _, rel := range valid {
		descriptions[rel.TagName] = s.md.Render(rel.Body)
	}

	feeds := make([]*entity.Feed, 0, len(s.cfg.Feeds))
	for i := range s.cfg.Feeds {
		feeds = append(feeds, s.buildFeed(&s.cfg.Feeds[i], valid, descriptions))
	}

	return feeds, nil
}

func (s *FeedService) filterReleases(releases []*entity.Release) []*entity.Release {
	var valid []*entity.Release

	for _, rel := range releases {
		if rel.Draft {
			continue
		}

		if rel.TagName == "" {
			s.log.Warn("Skip release without tag", slog.String("name", rel.Name))

			continue
		}

		if rel.PublishedAt.IsZero() {
			s.log.Warn("Skip release without publish time", slog.String("tag", rel.TagName))

			continue
		}

		if len(s.matchedAssets(rel)) == 0 {
			s.log.Warn("Skip release without matching assets",
				slog.String("tag", rel.TagName), slog.String("pattern", s.cfg.AssetPattern))

			continue
		}

		valid = append(valid, rel)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		if !valid[i].PublishedAt.Equal(valid[j].PublishedAt) {
			return valid[i].PublishedAt.After(valid[j].PublishedAt)
		}

		return valid[i].TagName < valid[j].TagName
	})

	if s.cfg.MaxEntries > 0 && len(valid) > s.cfg.MaxEntries {
		valid = valid[:s.cfg.MaxEntries]
	}

	return valid
}

func (s *FeedService) matchedAssets(rel *entity.Release) []*entity.Asset {
	var assets []*entity.Asset

	for i := range rel.Assets {
		// Pattern validity is checked at config load.
		if ok, _ := filepath.Match(s.cfg.AssetPattern, rel.Assets[i].Name); ok {
			assets = append(assets, &rel.Assets[i])
		}
	}

	return assets
}

func (s *FeedService) buildFeed(fc *config.FeedConfig, releases []*entity.Release, descriptions map[string]string) *entity.Feed {
	title := s.cfg.ChannelTitle
	if fc.UseMirror {
		title += mirrorTitleSuffix
	}
	if fc.IncludePrereleases {
		title += prereleaseTitleSuffix
	}

	feed := &entity.Feed{
		FileName:    fc.FileName,
		Title:       title,
		Link:        s.cfg.ChannelLink,
		Description: title,
	}

	for _, rel := range releases {
		if rel.Prerelease && !fc.IncludePrereleases {
			continue
		}

		for _, asset := range s.matchedAssets(rel) {
			feed.Items = append(feed.Items, s.buildItem(fc, rel, asset, descriptions[rel.TagName]))
		}
	}

	return feed
}

func (s *FeedService) buildItem(fc *config.FeedConfig, rel *entity.Release, asset *entity.Asset, description string) *entity.Item {
	link := asset.BrowserDownloadURL
	if fc.UseMirror && s.cfg.MirrorPrefix != "" {
		link = s.cfg.MirrorPrefix + link
	}

	return &entity.Item{
		Title:       fmt.Sprintf("%s (%s)", rel.Title(), asset.Name),
		Link:        link,
		GUID:        itemGUID(rel.TagName, asset.Name),
		PubDate:     rel.PublishedAt,
		Description: description,
		Enclosure: entity.Enclosure{
			URL:    link,
			Length: asset.Size,
			Type:   asset.ContentType,
		},
	}
}

// itemGUID derives a stable identifier from the release tag and asset
// name so feed readers deduplicate items across regenerated documents.
func itemGUID(tag, assetName string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(tag+":"+assetName)).String()
}
