package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	tghelpers "astrobot/core/telegram/helpers"
	"astrobot/core/telegram/ui"
	"astrobot/internal/dates"
	"astrobot/internal/nasa"
	"astrobot/internal/session"
)

var _ ui.FallbackProvider = (*Handlers)(nil)

// FreeText interprets a non-command message against the chat's pending
// operation. When a date is awaited the text must be a usable date; otherwise
// the message is unrecognized. Every rejection resets the conversation.
func (h *Handlers) FreeText(c tele.Context) error {
	chatID := c.Chat().ID
	op, rover := h.sessions.Snapshot(chatID)

	if !op.NeedsDate() {
		return tghelpers.SendText(c, errUnknownInput)
	}
	// A rover flow expects a keyboard press, not text, until a rover is chosen.
	if op == session.OpRoverPhotos && rover == session.RoverNone {
		return tghelpers.SendText(c, errUnknownInput)
	}

	date := strings.TrimSpace(c.Text())
	if !dates.IsValid(date) {
		return h.rejectDate(c, errDateFormat)
	}
	if dates.IsFuture(date) {
		return h.rejectDate(c, errDateNoPictures)
	}

	if op == session.OpEarthImagery {
		if err := h.svc.Earth.RefreshAvailableDates(tghelpers.BuildContext(c)); err != nil {
			h.retractPrompt(c)
			h.sessions.Reset(chatID)
			_ = tghelpers.SendText(c, errServerConnection)
			return err
		}
		if dates.After(nasa.EPICFloorDate, date) || !h.svc.Earth.HasDate(date) {
			return h.rejectDate(c, errDateNoPictures)
		}
	}

	return h.deliverPending(c, op, rover, date)
}

func (h *Handlers) rejectDate(c tele.Context, text string) error {
	h.retractPrompt(c)
	h.sessions.Reset(c.Chat().ID)
	return tghelpers.SendText(c, text)
}

// UnknownText handles free text when no fallback is registered. Kept for the
// router contract; FreeText is registered as the text fallback.
func (h *Handlers) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, errUnknownInput)
	}
}

// UnknownDocument rejects stray document uploads.
func (h *Handlers) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, errUnknownInput)
	}
}

// UnknownCallback rejects keyboard presses whose key is not registered.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.staleCallback(c)
	}
}
