package nasa

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"astrobot/internal/dates"
	"astrobot/internal/emoji"
)

// EPICFloorDate is the first day the EPIC camera has imagery for.
const EPICFloorDate = "2015-06-13"

type epicPayload struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Date    string `json:"date"`
}

type epicDatePayload struct {
	Date string `json:"date"`
}

// epicDateCache memoizes the set of dates EPIC has imagery for. The listing is
// fetched at most once per process; it only ever grows by one entry per day,
// so staleness within a process lifetime is acceptable.
type epicDateCache struct {
	mu        sync.Mutex
	populated bool
	set       map[string]struct{}
}

// RefreshAvailableDates fetches the EPIC available-date listing unless it has
// already been loaded. Safe to call from every earth-imagery command.
func (c *Client) RefreshAvailableDates(ctx context.Context) error {
	c.epicDates.mu.Lock()
	defer c.epicDates.mu.Unlock()
	if c.epicDates.populated {
		return nil
	}

	var listing []epicDatePayload
	url := fmt.Sprintf("%s/api/natural/all?api_key=%s", c.epicBase, c.apiKey)
	if err := c.getJSON(ctx, "epic", url, &listing); err != nil {
		return err
	}

	set := make(map[string]struct{}, len(listing))
	for _, entry := range listing {
		set[entry.Date] = struct{}{}
	}
	c.epicDates.set = set
	c.epicDates.populated = true
	return nil
}

// HasDate reports whether EPIC has imagery for the given yyyy-mm-dd date.
// Returns false until RefreshAvailableDates has succeeded once.
func (c *Client) HasDate(date string) bool {
	c.epicDates.mu.Lock()
	defer c.epicDates.mu.Unlock()
	_, ok := c.epicDates.set[date]
	return ok
}

// EarthImages fetches the EPIC snapshots for a date and renders one post per
// image. An empty date asks for the most recent imagery.
func (c *Client) EarthImages(ctx context.Context, date string) ([]string, error) {
	url := fmt.Sprintf("%s/api/natural?api_key=%s", c.epicBase, c.apiKey)
	if date != "" {
		url = fmt.Sprintf("%s/api/natural/date/%s?api_key=%s", c.epicBase, date, c.apiKey)
	}

	var payload []epicPayload
	if err := c.getJSON(ctx, "epic", url, &payload); err != nil {
		return nil, err
	}

	posts := make([]string, 0, len(payload))
	for _, img := range payload {
		day := dates.Reformat(strings.SplitN(img.Date, " ", 2)[0], dates.LayoutISO, "2006/01/02")
		link := fmt.Sprintf("%s/archive/natural/%s/png/%s.png?api_key=%s", c.epicBase, day, img.Image, c.apiKey)

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n\n", emoji.Earth, img.Caption)
		fmt.Fprintf(&b, "%s %s\n\n", emoji.Date, dates.Reformat(img.Date, dates.LayoutISOTime, dates.LayoutLongTime))
		fmt.Fprintf(&b, "%s Image Link: %s", emoji.Satellite, link)
		posts = append(posts, b.String())
	}
	return posts, nil
}
