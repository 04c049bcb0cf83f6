package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"astrobot/core/logger"
	tghelpers "astrobot/core/telegram/helpers"
	"astrobot/internal/history"
	"astrobot/internal/nasa"
)

type fetchFunc func(ctx context.Context) ([]string, error)

// singlePost adapts a one-post fetch to the delivery pipeline.
func singlePost(fetch func(ctx context.Context) (string, error)) fetchFunc {
	return func(ctx context.Context) ([]string, error) {
		post, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return []string{post}, nil
	}
}

// deliver runs the shared delivery pipeline: retract the pending keyboard
// prompt, show a fetching placeholder, call the provider, retract the
// placeholder, then either send the posts or the mapped error text. The chat
// session is reset on every exit path.
func (h *Handlers) deliver(c tele.Context, record history.Request, fetch fetchFunc) error {
	chatID := c.Chat().ID

	// A second trigger while a delivery is running is dropped silently.
	if h.sessions.SetDeliveryInFlight(chatID, true) {
		return nil
	}
	defer h.sessions.Reset(chatID)

	h.retractPrompt(c)
	ctx := tghelpers.BuildContext(c)

	placeholder, err := h.sendSync(c, textFetching)
	if err != nil {
		logger.Warn(ctx, "tg", "placeholder.send.fail",
			slog.String("err", err.Error()),
		)
	}

	posts, fetchErr := fetch(ctx)

	if placeholder != nil {
		h.retractMessage(c, chatID, placeholder.ID)
	}

	if fetchErr != nil {
		_ = tghelpers.SendText(c, failureText(fetchErr))
		return fetchErr
	}

	for _, post := range posts {
		if err := tghelpers.SendText(c, post); err != nil {
			return err
		}
	}

	if h.history != nil {
		if sender := c.Sender(); sender != nil {
			record.UserID = sender.ID
		}
		record.ChatID = chatID
		h.history.Record(ctx, record)
	}
	return nil
}

// failureText maps a provider error onto the user-facing error message.
func failureText(err error) string {
	var (
		noDataErr    *nasa.NoDataError
		noResultsErr *nasa.NoResultsError
	)
	switch {
	case errors.As(err, &noDataErr):
		return errDateNoPictures
	case errors.As(err, &noResultsErr):
		return errNoImagesFound
	default:
		return errServerConnection
	}
}

// retractPrompt deletes the chat's pending keyboard prompt, if any.
func (h *Handlers) retractPrompt(c tele.Context) {
	chatID := c.Chat().ID
	if id := h.sessions.TakePrompt(chatID); id != 0 {
		h.retractMessage(c, chatID, id)
	}
}

func (h *Handlers) retractMessage(c tele.Context, chatID int64, messageID int) {
	if err := h.deleteMsg(c, chatID, messageID); err != nil {
		logger.Debug(tghelpers.BuildContext(c), "tg", "message.delete.fail",
			slog.Int("message_id", messageID),
			slog.String("err", err.Error()),
		)
	}
}

func deleteStoredMessage(c tele.Context, chatID int64, messageID int) error {
	return c.Bot().Delete(tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    chatID,
	})
}
