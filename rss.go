package labsite

import (
	"encoding/xml"
	"io"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// writeFeed writes an RSS 2.0 feed of the headlines.
func writeFeed(w io.Writer, cfg SiteConfig, headlines []*Headline) error {
	base := BuildURL(cfg.URL)
	items := make([]rssItem, 0, len(headlines))
	for _, h := range headlines {
		pubDate := ""
		if !h.Date.IsZero() {
			pubDate = h.Date.Format(time.RFC1123Z)
		}
		link := BuildURL(cfg.URL, h.URL)
		title := h.Title
		if title == "" {
			title = h.Slug
		}
		items = append(items, rssItem{
			Title:       title,
			Link:        link,
			Description: h.Get("summary"),
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        base,
			Description: cfg.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(feed)
}
