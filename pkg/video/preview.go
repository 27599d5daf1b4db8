package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxPreviewBytes = 1 << 20

type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	EmbedURL    string `json:"embedUrl"`
	Thumbnail   string `json:"thumbnailUrl"`
}

type Previewer struct {
	client *http.Client
}

func NewPreviewer(timeout time.Duration) *Previewer {
	return &Previewer{client: &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			if !youtubeHost(req.URL.Hostname(), true) {
				return fmt.Errorf("redirect to %s: %w", req.URL.Host, ErrInvalidURL)
			}
			return nil
		},
	}}
}

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// youtubeHost reports whether host may be fetched. Redirects may also land
// on other youtube.com subdomains such as the consent page.
func youtubeHost(host string, redirect bool) bool {
	host = strings.ToLower(host)
	return youtubeHosts[host] || (redirect && strings.HasSuffix(host, ".youtube.com"))
}

// WatchURL checks that raw is an http(s) link on a YouTube host and returns
// the canonical watch page for its video id.
func WatchURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.User != nil || u.Port() != "" {
		return "", ErrInvalidURL
	}
	if !youtubeHost(u.Hostname(), false) {
		return "", ErrInvalidURL
	}
	id := YouTubeID(strings.ToLower(u.Host) + u.RequestURI())
	if id == "" {
		return "", ErrInvalidURL
	}
	return "https://www.youtube.com/watch?v=" + id, nil
}

// Fetch reads the page metadata for a YouTube link. Only the watch page
// rebuilt from the video id is requested. Open Graph tags win over the
// <title> element.
func (p *Previewer) Fetch(ctx context.Context, link string) (*Preview, error) {
	watch, err := WatchURL(link)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watch, nil)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", watch, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", watch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("preview %s: status %d", watch, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", watch, err)
	}
	meta := func(prop string) string {
		v, _ := doc.Find(`meta[property="` + prop + `"]`).First().Attr("content")
		return strings.TrimSpace(v)
	}
	out := &Preview{
		Title:       meta("og:title"),
		Description: meta("og:description"),
		Source:      meta("og:site_name"),
		EmbedURL:    EmbedURL(watch),
		Thumbnail:   ThumbnailURL(watch),
	}
	if out.Title == "" {
		out.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return out, nil
}
