package domain

import (
	"time"

	"github.com/google/uuid"
)

type FetchOutcome string

const (
	FetchOutcomeLive     FetchOutcome = "live"
	FetchOutcomeFallback FetchOutcome = "fallback"
	FetchOutcomeFatal    FetchOutcome = "fatal"
)

// FetchEvent records how one provider fetch cycle ended. It never holds post data.
type FetchEvent struct {
	ID        uuid.UUID
	Outcome   FetchOutcome
	Code      string
	Message   string
	PostCount int
	CreatedAt time.Time
}
