package feed

import (
	"fmt"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/formatter"
)

const (
	captionPreviewLen = 100
	ellipsis          = "..."
	noCaption         = "Sin descripción"

	bannerLiveTitle = "API Segura Configurada"
	bannerDemoTitle = "Modo Demostración"
	msgUnreachable  = "No se pudo conectar con el servidor, mostrando publicaciones de demostración"
)

// State is the lifecycle of a container. Everything but StateLoading is terminal.
type State int

const (
	StateLoading State = iota
	StatePopulated
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Banner tells the reader whether the posts are live.
type Banner struct {
	Live    bool
	Title   string
	Message string
}

// Card is the display form of one post.
type Card struct {
	Number    int
	ImageURL  string
	AltText   string
	Caption   string
	Date      string
	Permalink string
	MediaKind string
	IsVideo   bool
	IsDemo    bool
}

// View is everything a surface needs to draw a terminal container state.
type View struct {
	State  State
	Banner Banner
	Cards  []Card
	Error  string
}

// CaptionPreview shortens a caption to 100 characters plus an ellipsis.
func CaptionPreview(caption string) string {
	if caption == "" {
		return noCaption
	}
	return formatter.Truncate(caption, captionPreviewLen, ellipsis)
}

// BuildCard maps a post at its 0-based position to a card. It has no side
// effects: the same input always yields the same card.
func BuildCard(post domain.Post, index int, loc *time.Location) Card {
	number := index + 1
	card := Card{
		Number:    number,
		ImageURL:  post.DisplayImage(),
		Caption:   CaptionPreview(post.Caption),
		Date:      formatter.LongDateES(post.Timestamp, loc),
		Permalink: post.Permalink,
		MediaKind: "image",
		IsVideo:   post.IsVideo(),
		IsDemo:    post.IsDemo(),
	}

	if card.IsVideo {
		card.MediaKind = "video"
		card.AltText = fmt.Sprintf("Video de Instagram %d", number)
	} else {
		card.AltText = fmt.Sprintf("Publicación de Instagram %d", number)
	}
	return card
}

// BuildView turns a fetch result into a view. local marks data that the
// renderer substituted itself after the source failed.
func BuildView(result domain.FetchResult, local bool, loc *time.Location) View {
	if len(result.Data) == 0 {
		return View{State: StateEmpty}
	}

	cards := make([]Card, len(result.Data))
	for i, post := range result.Data {
		cards[i] = BuildCard(post, i, loc)
	}

	return View{
		State:  StatePopulated,
		Banner: buildBanner(result, local),
		Cards:  cards,
	}
}

func buildBanner(result domain.FetchResult, local bool) Banner {
	switch {
	case local:
		return Banner{Title: bannerDemoTitle, Message: msgUnreachable}
	case result.Success:
		return Banner{Live: true, Title: bannerLiveTitle}
	default:
		msg := result.Message
		if msg == "" {
			msg = "Mostrando publicaciones de demostración"
		}
		return Banner{Title: bannerDemoTitle, Message: msg}
	}
}
