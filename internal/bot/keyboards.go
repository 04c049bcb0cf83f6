package bot

import (
	tele "gopkg.in/telebot.v4"

	"astrobot/core/telegram/keyboard"
)

// Callback keys for the inline keyboards. Registered once and matched against
// the pending operation when pressed.
const (
	cbSetCustomDate  = "set-custom-date"
	cbSetDefaultDate = "set-default-date"
	cbCancelDate     = "cancel-date"

	cbRoverCuriosity    = "rover-curiosity"
	cbRoverPerseverance = "rover-perseverance"
	cbCancelRover       = "cancel-rover"
)

func dateKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "Set Custom Date", Unique: cbSetCustomDate},
			{Text: "Set Default Date", Unique: cbSetDefaultDate},
		},
		[]keyboard.InlineBtn{
			{Text: "Cancel", Unique: cbCancelDate},
		},
	)
}

func roverKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "Curiosity", Unique: cbRoverCuriosity},
			{Text: "Perseverance", Unique: cbRoverPerseverance},
		},
		[]keyboard.InlineBtn{
			{Text: "Cancel", Unique: cbCancelRover},
		},
	)
}
