package nasa

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"astrobot/internal/dates"
	"astrobot/internal/emoji"
)

type apodPayload struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
}

// PictureOfDay fetches the astronomy picture of the day and renders it as a
// post. An empty date asks for the latest entry.
func (c *Client) PictureOfDay(ctx context.Context, date string) (string, error) {
	q := url.Values{"api_key": {c.apiKey}}
	if date != "" {
		q.Set("date", date)
	}

	var payload apodPayload
	if err := c.getJSON(ctx, "apod", c.apodBase+"?"+q.Encode(), &payload); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", emoji.Page, payload.Title)
	fmt.Fprintf(&b, "%s %s\n\n", emoji.Date, dates.Reformat(payload.Date, dates.LayoutISO, dates.LayoutLong))
	fmt.Fprintf(&b, "%s Description: %s\n\n", emoji.Pushpin, payload.Explanation)
	if payload.HDURL == "" {
		fmt.Fprintf(&b, "%s YouTube Video Link: %s", emoji.Link, payload.URL)
	} else {
		fmt.Fprintf(&b, "%s 4k Image Link: %s\n\n", emoji.Link, payload.HDURL)
		fmt.Fprintf(&b, "%s HD Image Link: %s", emoji.Link, payload.URL)
	}
	return b.String(), nil
}
