package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"astrobot/core/logger"
	tghelpers "astrobot/core/telegram/helpers"
	"astrobot/internal/history"
	"astrobot/internal/session"
	"log/slog"
)

// Start greets the user and clears any half-finished conversation.
func (h *Handlers) Start(c tele.Context) error {
	h.retractPrompt(c)
	h.sessions.Reset(c.Chat().ID)

	var firstName string
	if sender := c.Sender(); sender != nil {
		firstName = sender.FirstName
	}
	return tghelpers.SendText(c, greeting(firstName))
}

// Help lists the available commands.
func (h *Handlers) Help(c tele.Context) error {
	return tghelpers.SendText(c, textHelp)
}

// PictureOfDay starts the astronomy-picture flow by asking for date
// parameters.
func (h *Handlers) PictureOfDay(c tele.Context) error {
	h.sessions.Begin(c.Chat().ID, session.OpPictureOfDay)
	return h.sendPrompt(c, textChooseDate, dateKeyboard())
}

// EarthImagery starts the EPIC flow. The available-date listing is warmed up
// in the background so the date check is ready by the time the user answers.
func (h *Handlers) EarthImagery(c tele.Context) error {
	h.sessions.Begin(c.Chat().ID, session.OpEarthImagery)

	ctx := tghelpers.BuildContext(c)
	go func() {
		if err := h.svc.Earth.RefreshAvailableDates(ctx); err != nil {
			logger.Warn(ctx, "nasa", "epic.dates.warmup.fail",
				slog.String("err", err.Error()),
			)
		}
	}()

	return h.sendPrompt(c, textChooseDate, dateKeyboard())
}

// RoverPhotos starts the rover-photo flow by asking which rover to use.
func (h *Handlers) RoverPhotos(c tele.Context) error {
	h.sessions.Begin(c.Chat().ID, session.OpRoverPhotos)
	return h.sendPrompt(c, textChooseRover, roverKeyboard())
}

// RoverInfo starts the rover-information flow by asking which rover to use.
func (h *Handlers) RoverInfo(c tele.Context) error {
	h.sessions.Begin(c.Chat().ID, session.OpRoverInfo)
	return h.sendPrompt(c, textChooseRover, roverKeyboard())
}

// Image searches the NASA image library for the topic given after the command.
func (h *Handlers) Image(c tele.Context) error {
	topic := strings.TrimSpace(c.Message().Payload)
	if topic == "" {
		return tghelpers.SendText(c, textImageUsage)
	}
	return h.deliver(c,
		history.Request{Command: "/image", Query: topic},
		singlePost(func(ctx context.Context) (string, error) {
			return h.svc.Images.SearchImage(ctx, topic)
		}),
	)
}

// Stats reports per-command request totals. Admin only.
func (h *Handlers) Stats(c tele.Context) error {
	if h.history == nil {
		return tghelpers.SendText(c, "Request logging is disabled.")
	}
	totals, err := h.history.CommandTotals(tghelpers.BuildContext(c))
	if err != nil {
		_ = tghelpers.SendText(c, errServerConnection)
		return err
	}
	if len(totals) == 0 {
		return tghelpers.SendText(c, "No requests served yet.")
	}

	var b strings.Builder
	b.WriteString("Requests served per command:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "\n%s: %d", t.Command, t.Total)
	}
	return tghelpers.SendText(c, b.String())
}

// sendPrompt retracts the previous keyboard prompt and sends a new one,
// remembering its message ID so it can be retracted in turn.
func (h *Handlers) sendPrompt(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	h.retractPrompt(c)
	msg, err := h.sendSync(c, text, markup)
	if err != nil {
		return err
	}
	h.sessions.SetPrompt(c.Chat().ID, msg.ID)
	return nil
}
