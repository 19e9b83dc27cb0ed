package mdadapter

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Release bodies keep GitHub's two-space hard wraps, so the container
// preserves whitespace.
const (
	wrapperOpen  = `<div style="white-space: pre-wrap; font-family: sans-serif">`
	wrapperClose = `</div>`
)

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

type Renderer struct {
	md  goldmark.Markdown
	log *slog.Logger
}

func NewRenderer(log *slog.Logger) *Renderer {
	md := goldmark.New(
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &Renderer{
		md:  md,
		log: log.With(slog.String("item", "MarkdownRenderer")),
	}
}

// Render converts a release body from GitHub markdown to XHTML. A body
// that fails to convert is escaped as-is: a broken changelog must not
// break the feed.
func (r *Renderer) Render(body string) string {
	if body == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		r.log.Warn("Cannot convert markdown, fall back to escaped text", slog.Any("error", err))

		return escaper.Replace(body)
	}

	return wrapperOpen + buf.String() + wrapperClose
}
