package ghadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jgivc/releasefeed/internal/entity"
)

const (
	perPage      = 100
	maxPages     = 10
	fetchTimeout = 30 * time.Second
	acceptHeader = "application/vnd.github+json"
)

type ReleaseFetcher struct {
	apiURL string
	owner  string
	repo   string
	token  string
	client *http.Client
	log    *slog.Logger
}

func NewReleaseFetcher(apiURL, owner, repo, token string, log *slog.Logger) *ReleaseFetcher {
	return &ReleaseFetcher{
		apiURL: apiURL,
		owner:  owner,
		repo:   repo,
		token:  token,
		client: &http.Client{Timeout: fetchTimeout},
		log:    log.With(slog.String("item", "ReleaseFetcher")),
	}
}

// Fetch pages through the releases API until a short page, returning
// every release the repository has published.
func (f *ReleaseFetcher) Fetch(ctx context.Context) ([]*entity.Release, error) {
	var releases []*entity.Release

	for page := 1; page <= maxPages; page++ {
		batch, err := f.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("cannot fetch releases page %d: %w", page, err)
		}

		releases = append(releases, batch...)
		f.log.Debug("Fetched page", slog.Int("page", page), slog.Int("count", len(batch)))

		if len(batch) < perPage {
			break
		}
	}

	f.log.Info("Fetched releases", slog.Int("count", len(releases)))

	return releases, nil
}

func (f *ReleaseFetcher) fetchPage(ctx context.Context, page int) ([]*entity.Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d&page=%d",
		f.apiURL, f.owner, f.repo, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var releases []*entity.Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("cannot decode response: %w", err)
	}

	return releases, nil
}
