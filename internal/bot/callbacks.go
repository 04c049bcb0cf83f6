package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"

	tghelpers "astrobot/core/telegram/helpers"
	"astrobot/internal/history"
	"astrobot/internal/session"
)

// SetCustomDate answers the date keyboard by asking for a typed date. The
// pending operation stays armed; the next free-text message is the date.
func (h *Handlers) SetCustomDate(c tele.Context) error {
	op, _ := h.sessions.Snapshot(c.Chat().ID)
	if !op.NeedsDate() {
		return h.staleCallback(c)
	}
	h.retractPrompt(c)
	return tghelpers.SendText(c, textEnterDate)
}

// SetDefaultDate answers the date keyboard by delivering the latest available
// imagery for the pending operation.
func (h *Handlers) SetDefaultDate(c tele.Context) error {
	op, rover := h.sessions.Snapshot(c.Chat().ID)
	if !op.NeedsDate() {
		return h.staleCallback(c)
	}
	return h.deliverPending(c, op, rover, "")
}

// CancelDate retracts the date keyboard and abandons the pending operation.
func (h *Handlers) CancelDate(c tele.Context) error {
	h.retractPrompt(c)
	h.sessions.Reset(c.Chat().ID)
	return nil
}

// ChooseCuriosity records the Curiosity choice for the pending rover flow.
func (h *Handlers) ChooseCuriosity(c tele.Context) error {
	return h.chooseRover(c, session.RoverCuriosity)
}

// ChoosePerseverance records the Perseverance choice for the pending rover flow.
func (h *Handlers) ChoosePerseverance(c tele.Context) error {
	return h.chooseRover(c, session.RoverPerseverance)
}

// CancelRover retracts the rover keyboard and abandons the pending operation.
func (h *Handlers) CancelRover(c tele.Context) error {
	h.retractPrompt(c)
	h.sessions.Reset(c.Chat().ID)
	return nil
}

func (h *Handlers) chooseRover(c tele.Context, rover session.Rover) error {
	chatID := c.Chat().ID
	op, _ := h.sessions.Snapshot(chatID)

	switch op {
	case session.OpRoverPhotos:
		h.sessions.SetRover(chatID, rover)
		return h.sendPrompt(c, textChooseDate, dateKeyboard())
	case session.OpRoverInfo:
		h.sessions.SetRover(chatID, rover)
		return h.deliver(c,
			history.Request{Command: "/roverinfo", Rover: rover.String()},
			singlePost(func(ctx context.Context) (string, error) {
				return h.svc.Rovers.RoverInfo(ctx, rover.String())
			}),
		)
	default:
		return h.staleCallback(c)
	}
}

// deliverPending fetches and sends the imagery for the chat's pending
// operation. An empty date means the latest available imagery.
func (h *Handlers) deliverPending(c tele.Context, op session.Operation, rover session.Rover, date string) error {
	switch op {
	case session.OpPictureOfDay:
		return h.deliver(c,
			history.Request{Command: "/apod", Date: date},
			singlePost(func(ctx context.Context) (string, error) {
				return h.svc.Pictures.PictureOfDay(ctx, date)
			}),
		)
	case session.OpEarthImagery:
		return h.deliver(c,
			history.Request{Command: "/epic", Date: date},
			func(ctx context.Context) ([]string, error) {
				return h.svc.Earth.EarthImages(ctx, date)
			},
		)
	case session.OpRoverPhotos:
		if rover == session.RoverNone {
			return h.staleCallback(c)
		}
		return h.deliver(c,
			history.Request{Command: "/rover", Rover: rover.String(), Date: date},
			singlePost(func(ctx context.Context) (string, error) {
				return h.svc.Rovers.RoverPhoto(ctx, rover.String(), date)
			}),
		)
	default:
		return h.staleCallback(c)
	}
}

// staleCallback handles a keyboard press that no longer matches the chat's
// pending operation, e.g. after a hard error already reset the conversation.
func (h *Handlers) staleCallback(c tele.Context) error {
	h.retractPrompt(c)
	h.sessions.Reset(c.Chat().ID)
	return tghelpers.SendText(c, errUnknownInput)
}
