// Package demo holds the sample posts shown when live Instagram data is unavailable.
package demo

import (
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/domain"
	"github.com/jonboulle/clockwork"
)

const permalink = "https://instagram.com/demo"

// Posts returns a fresh copy of the demo set. Timestamps are relative to the
// clock: today, yesterday and the day before.
func Posts(clock clockwork.Clock) []domain.Post {
	now := clock.Now().UTC()
	return []domain.Post{
		{
			ID:        domain.DemoIDPrefix + "1",
			Caption:   "¡Bienvenidos a Cabimas! 🌅 Hermoso atardecer en nuestro puerto petrolero. #Cabimas #Venezuela #PuertoPetrolero",
			MediaType: domain.MediaTypeImage,
			MediaURL:  "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=600&h=400&fit=crop",
			Permalink: permalink,
			Timestamp: now,
		},
		{
			ID:        domain.DemoIDPrefix + "2",
			Caption:   "Trabajando por el desarrollo de nuestra ciudad 💪 #Desarrollo #Cabimas #Futuro",
			MediaType: domain.MediaTypeImage,
			MediaURL:  "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?w=600&h=400&fit=crop",
			Permalink: permalink,
			Timestamp: now.Add(-24 * time.Hour),
		},
		{
			ID:           domain.DemoIDPrefix + "3",
			Caption:      "Celebrando la cultura y tradiciones de Cabimas 🎉 #Cultura #Tradición #Cabimas",
			MediaType:    domain.MediaTypeVideo,
			MediaURL:     "https://images.unsplash.com/photo-1511795409834-ef04bbd61622?w=300&h=200&fit=crop",
			ThumbnailURL: "https://images.unsplash.com/photo-1511795409834-ef04bbd61622?w=300&h=200&fit=crop",
			Permalink:    permalink,
			Timestamp:    now.Add(-48 * time.Hour),
		},
	}
}
