package entity

import "time"

// Release is a published version of the tracked repository, shaped the
// way the GitHub releases API reports it.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
	ContentType        string `json:"content_type"`
}

// Title returns the human-readable release title, falling back to the
// tag when the release was published without a name.
func (r *Release) Title() string {
	if r.Name != "" {
		return r.Name
	}

	return r.TagName
}
