package domain

import (
	"strings"
	"time"
)

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

// DemoIDPrefix marks posts that are sample content rather than live data.
const DemoIDPrefix = "demo_"

// Post is a single Instagram media item as exposed by the posts API.
type Post struct {
	ID           string    `json:"id"`
	Caption      string    `json:"caption,omitempty"`
	MediaType    MediaType `json:"media_type"`
	MediaURL     string    `json:"media_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Permalink    string    `json:"permalink"`
	Timestamp    time.Time `json:"timestamp"`
}

func (p Post) IsVideo() bool {
	return p.MediaType == MediaTypeVideo
}

func (p Post) IsDemo() bool {
	return strings.HasPrefix(p.ID, DemoIDPrefix)
}

// DisplayImage returns the image shown for the post: the thumbnail for videos
// when there is one, the media URL otherwise.
func (p Post) DisplayImage() string {
	if p.IsVideo() && p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	if p.MediaURL != "" {
		return p.MediaURL
	}
	return p.ThumbnailURL
}

// HasDisplayImage reports whether DisplayImage resolves to a non-empty URL.
func (p Post) HasDisplayImage() bool {
	return p.DisplayImage() != ""
}

// Account is the identity behind an access token.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
