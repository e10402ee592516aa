package graphapi

import (
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
)

const mediaFields = "id,caption,media_type,media_url,thumbnail_url,permalink,timestamp"

// Graph API timestamps look like 2017-08-31T18:10:00+0000.
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

type graphError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	FBTraceID string `json:"fbtrace_id"`
}

type meResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Error    *graphError `json:"error"`
}

func (r *meResponse) graphErr() *graphError { return r.Error }

type mediaResponse struct {
	Data  []mediaItem `json:"data"`
	Error *graphError `json:"error"`
}

func (r *mediaResponse) graphErr() *graphError { return r.Error }

type mediaItem struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
}

// toPost validates the item and converts it. The second result is a reason
// when the item cannot be displayed.
func (m mediaItem) toPost() (domain.Post, string) {
	if m.ID == "" {
		return domain.Post{}, "missing id"
	}

	ts, ok := parseTimestamp(m.Timestamp)
	if !ok {
		return domain.Post{}, "invalid timestamp"
	}

	mediaType := domain.MediaTypeImage
	if m.MediaType == string(domain.MediaTypeVideo) {
		mediaType = domain.MediaTypeVideo
	}

	post := domain.Post{
		ID:           m.ID,
		Caption:      m.Caption,
		MediaType:    mediaType,
		MediaURL:     m.MediaURL,
		ThumbnailURL: m.ThumbnailURL,
		Permalink:    m.Permalink,
		Timestamp:    ts,
	}
	if !post.HasDisplayImage() {
		return domain.Post{}, "no displayable image"
	}
	return post, ""
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
