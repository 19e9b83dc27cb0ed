package rss

import (
	"encoding/xml"
	"fmt"

	"github.com/jgivc/releasefeed/internal/entity"
)

const (
	rssVersion = "2.0"
	indent     = "  "

	// RFC 822 as feed readers expect it, rendered against UTC.
	pubDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

type document struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Items       []item `xml:"item"`
}

type item struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        guid       `xml:"guid"`
	PubDate     string     `xml:"pubDate"`
	Description string     `xml:"description"`
	Enclosure   *enclosure `xml:"enclosure,omitempty"`
}

type guid struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type enclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// Marshal renders a feed as an RSS 2.0 document. Output is stable:
// identical feeds serialize to identical bytes, so reruns on the same
// input leave committed files untouched.
func Marshal(feed *entity.Feed) ([]byte, error) {
	doc := document{
		Version: rssVersion,
		Channel: channel{
			Title:       feed.Title,
			Link:        feed.Link,
			Description: feed.Description,
		},
	}

	for _, it := range feed.Items {
		entry := item{
			Title: it.Title,
			Link:  it.Link,
			// Synthetic identifier, not a fetchable URL.
			GUID:        guid{IsPermaLink: "false", Value: it.GUID},
			PubDate:     it.PubDate.UTC().Format(pubDateFormat),
			Description: it.Description,
		}

		if it.Enclosure.URL != "" {
			entry.Enclosure = &enclosure{
				URL:    it.Enclosure.URL,
				Length: it.Enclosure.Length,
				Type:   it.Enclosure.Type,
			}
		}

		doc.Channel.Items = append(doc.Channel.Items, entry)
	}

	data, err := xml.MarshalIndent(&doc, "", indent)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal rss document: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, xml.Header...)
	out = append(out, data...)
	out = append(out, '\n')

	return out, nil
}
