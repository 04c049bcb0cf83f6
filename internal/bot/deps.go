package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"

	tghelpers "astrobot/core/telegram/helpers"
	"astrobot/internal/history"
	"astrobot/internal/session"
)

// PictureService serves the astronomy picture of the day.
type PictureService interface {
	PictureOfDay(ctx context.Context, date string) (string, error)
}

// EarthService serves EPIC Earth imagery and its available-date listing.
type EarthService interface {
	RefreshAvailableDates(ctx context.Context) error
	HasDate(date string) bool
	EarthImages(ctx context.Context, date string) ([]string, error)
}

// RoverService serves Mars rover photos and mission facts.
type RoverService interface {
	RoverPhoto(ctx context.Context, rover, date string) (string, error)
	RoverInfo(ctx context.Context, rover string) (string, error)
}

// ImageSearchService serves NASA image library lookups.
type ImageSearchService interface {
	SearchImage(ctx context.Context, query string) (string, error)
}

// Services bundles the NASA providers the handlers depend on.
type Services struct {
	Pictures PictureService
	Earth    EarthService
	Rovers   RoverService
	Images   ImageSearchService
}

// Handlers owns the bot's update handlers and the state they share.
type Handlers struct {
	svc      Services
	sessions *session.Store
	history  *history.Store

	// Synchronous send and delete, overridable in tests.
	sendSync  func(c tele.Context, text string, opts ...interface{}) (*tele.Message, error)
	deleteMsg func(c tele.Context, chatID int64, messageID int) error
}

// NewHandlers wires handlers to their providers. The history store may be nil
// when request logging is disabled.
func NewHandlers(svc Services, sessions *session.Store, hist *history.Store) *Handlers {
	return &Handlers{
		svc:       svc,
		sessions:  sessions,
		history:   hist,
		sendSync:  tghelpers.SendTextSync,
		deleteMsg: deleteStoredMessage,
	}
}
