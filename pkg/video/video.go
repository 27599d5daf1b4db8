// Package video validates user-added YouTube links and previews pages so
// the add form can be prefilled.
package video

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"agniro/entities"
)

var (
	ErrInvalidURL   = errors.New("please enter a valid YouTube video URL")
	ErrMissingField = errors.New("video title and YouTube URL are required")
)

const DefaultThumbnailHint = "video play"

var youtubeRX = regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// YouTubeID extracts the 11 character video id, or "" when url is not a
// YouTube link.
func YouTubeID(url string) string {
	m := youtubeRX.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

func EmbedURL(url string) string {
	if id := YouTubeID(url); id != "" {
		return "https://www.youtube.com/embed/" + id
	}
	return ""
}

func ThumbnailURL(url string) string {
	if id := YouTubeID(url); id != "" {
		return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
	}
	return ""
}

func NewID(now time.Time) string { return fmt.Sprintf("video-%d", now.UnixMilli()) }

// Validate trims v in place and checks the required fields.
func Validate(v *entities.Video) error {
	v.Title = strings.TrimSpace(v.Title)
	v.YoutubeURL = strings.TrimSpace(v.YoutubeURL)
	v.Source = strings.TrimSpace(v.Source)
	v.Description = strings.TrimSpace(v.Description)
	v.ThumbnailHint = strings.TrimSpace(v.ThumbnailHint)
	if v.Title == "" || v.YoutubeURL == "" {
		return ErrMissingField
	}
	if YouTubeID(v.YoutubeURL) == "" {
		return ErrInvalidURL
	}
	if v.ThumbnailHint == "" {
		v.ThumbnailHint = DefaultThumbnailHint
	}
	return nil
}
