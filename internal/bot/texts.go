package bot

import (
	"fmt"
	"strings"

	"astrobot/internal/emoji"
)

// User-facing texts. Wording is stable; tests and the menu depend on it.

const (
	textHelp = `Available commands:

/apod - Astronomy Picture of the Day
/epic - Earth Polychromatic Imaging Camera photos
/rover - Mars Rover photos
/roverinfo - Mars Rover information
/image <topic> - Search the NASA Image Library
/help - Show this message

Date-driven commands will ask whether to use a custom date or the latest available imagery.`

	textChooseDate  = "Choose Date Parameters:"
	textChooseRover = "Choose the Mars Rover"

	textEnterDate = emoji.Date + " Enter the date in yyyy-mm-dd format:"
	textFetching  = emoji.SandWatch + "Fetching..."

	textImageUsage = emoji.Magnifier + " Send /image <topic> to search the NASA Image Library, e.g. /image Andromeda Galaxy"

	errServerConnection = emoji.Warning + "Server Connection Error!\nUnavailable to process your request! Please try again later."
	errDateFormat       = emoji.Warning + "Date-format Error!\nUnrecognized date format!"
	errDateNoPictures   = emoji.Warning + "Date-format Error!\nNo pictures available for this date on the server!"
	errUnknownInput     = emoji.Warning + "User Input Error! Unrecognized Message!\nClick on the menu button or enter /help to see the commands"
	errNoImagesFound    = emoji.Warning + "User Input Error!\nNo Images Found With That Search Term!"
)

func greeting(firstName string) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("%s Hello, %s!\n\nI can show you NASA imagery: the astronomy picture of the day, Earth from a million miles away, and fresh photos from the Mars rovers.\n\nClick on the menu button or enter /help to see the commands.", emoji.Hello, name)
}
