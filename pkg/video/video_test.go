package video

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agniro/entities"
)

func TestYouTubeID(t *testing.T) {
	for link, want := range map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":   "dQw4w9WgXcQ",
		"youtube.com/watch?feature=share&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                  "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":     "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":         "dQw4w9WgXcQ",
		"https://vimeo.com/123456":                      "",
		"https://www.youtube.com/watch?v=short":         "",
		"":                                              "",
	} {
		assert.Equal(t, want, YouTubeID(link), link)
	}
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", ThumbnailURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.Empty(t, EmbedURL("not a link"))
}

func TestValidate(t *testing.T) {
	v := entities.Video{Title: "  Mulching ", YoutubeURL: " https://youtu.be/dQw4w9WgXcQ "}
	require.NoError(t, Validate(&v))
	assert.Equal(t, "Mulching", v.Title)
	assert.Equal(t, DefaultThumbnailHint, v.ThumbnailHint)

	assert.ErrorIs(t, Validate(&entities.Video{Title: "x"}), ErrMissingField)
	assert.ErrorIs(t, Validate(&entities.Video{YoutubeURL: "https://youtu.be/dQw4w9WgXcQ"}), ErrMissingField)
	assert.ErrorIs(t, Validate(&entities.Video{Title: "x", YoutubeURL: "https://example.com"}), ErrInvalidURL)
}

// toServer sends every request to srv whatever host the URL names.
type toServer struct{ target *url.URL }

func (t toServer) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme, req.URL.Host = t.target.Scheme, t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func previewerFor(t *testing.T, srv *httptest.Server) *Previewer {
	t.Helper()
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return &Previewer{client: &http.Client{Timeout: time.Second, Transport: toServer{target}}}
}

func TestPreviewReadsOpenGraph(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.RequestURI())
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html")
		if r.URL.Query().Get("v") == "aaaaaaaaaaa" {
			fmt.Fprint(w, `<html><head><title>Fallback - YouTube</title></head></html>`)
			return
		}
		fmt.Fprint(w, `<html><head>
<meta property="og:title" content=" Drip irrigation basics ">
<meta property="og:description" content="Save water">
<meta property="og:site_name" content="YouTube">
<title>ignored</title></head></html>`)
	}))
	defer srv.Close()

	p := previewerFor(t, srv)
	got, err := p.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Drip irrigation basics", got.Title)
	assert.Equal(t, "Save water", got.Description)
	assert.Equal(t, "YouTube", got.Source)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", got.EmbedURL)

	got, err = p.Fetch(context.Background(), "youtube.com/watch?v=aaaaaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "Fallback - YouTube", got.Title)

	_, err = p.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ?si=share")
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/watch?v=dQw4w9WgXcQ", "/watch?v=aaaaaaaaaaa", "/watch?v=dQw4w9WgXcQ"}, paths)
}

func TestWatchURL(t *testing.T) {
	for _, in := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://m.youtube.com/watch?feature=share&v=dQw4w9WgXcQ",
		"youtube.com/embed/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ",
	} {
		got, err := WatchURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", got, in)
	}

	for _, in := range []string{
		"http://127.0.0.1:8080/admin/youtu.be/AAAAAAAAAAA",
		"http://intranet.local/youtube.com/watch?v=AAAAAAAAAAA",
		"https://evil.example/?next=youtu.be/AAAAAAAAAAA",
		"https://youtube.com.evil.example/watch?v=AAAAAAAAAAA",
		"https://user@youtu.be/AAAAAAAAAAA",
		"https://youtu.be:8443/AAAAAAAAAAA",
		"ftp://youtu.be/AAAAAAAAAAA",
		"file:///etc/youtu.be/AAAAAAAAAAA",
		"https://www.youtube.com/about",
	} {
		_, err := WatchURL(in)
		assert.ErrorIs(t, err, ErrInvalidURL, in)
	}
}

func TestPreviewOnlyFetchesYouTube(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<html><head><title>internal-secret</title></head></html>`)
	}))
	defer srv.Close()

	p := NewPreviewer(time.Second)
	got, err := p.Fetch(context.Background(), srv.URL+"/admin/youtu.be/AAAAAAAAAAA")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Nil(t, got)
	assert.Zero(t, hits.Load())
}

func TestPreviewRedirectsStayOnYouTube(t *testing.T) {
	check := NewPreviewer(time.Second).client.CheckRedirect
	require.NotNil(t, check)

	to := func(raw string) *http.Request {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		return &http.Request{URL: u}
	}
	via := []*http.Request{to("https://www.youtube.com/watch?v=dQw4w9WgXcQ")}
	assert.NoError(t, check(to("https://consent.youtube.com/m?continue=x"), via))
	assert.ErrorIs(t, check(to("http://169.254.169.254/latest/meta-data"), via), ErrInvalidURL)
}

func TestPreviewErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	p := previewerFor(t, srv)
	_, err := p.Fetch(context.Background(), "https://example.com/page")
	assert.ErrorIs(t, err, ErrInvalidURL)
	_, err = p.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	assert.ErrorContains(t, err, "status 404")
}
