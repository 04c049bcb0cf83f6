package nasa

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"astrobot/internal/dates"
	"astrobot/internal/emoji"
)

type imageItemData struct {
	Title       string `json:"title"`
	DateCreated string `json:"date_created"`
	Description string `json:"description"`
}

type imageItemLink struct {
	Href string `json:"href"`
}

type imageItem struct {
	Data  []imageItemData `json:"data"`
	Links []imageItemLink `json:"links"`
}

type imagesPayload struct {
	Collection struct {
		Items []imageItem `json:"items"`
	} `json:"collection"`
}

// SearchImage looks the query up in the NASA image library and renders a
// randomly chosen hit as a post. A query with zero hits yields NoResultsError.
func (c *Client) SearchImage(ctx context.Context, query string) (string, error) {
	q := url.Values{"q": {query}, "media_type": {"image"}}

	var payload imagesPayload
	if err := c.getJSON(ctx, "images", c.imagesBase+"/search?"+q.Encode(), &payload); err != nil {
		return "", err
	}

	items := payload.Collection.Items
	if len(items) == 0 {
		return "", &NoResultsError{Query: query}
	}
	item := items[randIntN(len(items))]
	if len(item.Data) == 0 || len(item.Links) == 0 {
		return "", &NoResultsError{Query: query}
	}
	data := item.Data[0]

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", emoji.Page, data.Title)
	fmt.Fprintf(&b, "%s %s\n\n", emoji.Date, dates.ReformatISOTime(data.DateCreated, dates.LayoutLong))
	if desc := trimImageCredit(data.Description); desc != "" {
		fmt.Fprintf(&b, "%s Description: %s\n\n", emoji.Note, desc)
	}
	fmt.Fprintf(&b, "%s Image Link: %s", emoji.Link, item.Links[0].Href)
	return b.String(), nil
}

// trimImageCredit cuts the description off before the photo credit boilerplate
// many library entries append.
func trimImageCredit(desc string) string {
	if idx := strings.Index(strings.ToLower(desc), "image credit:"); idx >= 0 {
		desc = desc[:idx]
	}
	return strings.TrimSpace(desc)
}
