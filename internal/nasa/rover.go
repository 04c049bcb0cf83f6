package nasa

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"astrobot/internal/dates"
	"astrobot/internal/emoji"
)

// Camera preference per rover, best engineering views first. Photo selection
// walks the list and picks a random shot from the first camera that has any.
var roverCameras = map[string][]string{
	"curiosity": {"FHAZ", "RHAZ", "NAVCAM"},
	"perseverance": {
		"REAR_HAZCAM_RIGHT", "REAR_HAZCAM_LEFT",
		"FRONT_HAZCAM_RIGHT_A", "FRONT_HAZCAM_LEFT_A",
		"NAVCAM_RIGHT", "NAVCAM_LEFT", "SUPERCAM_RMI",
	},
}

var roverVideos = map[string]string{
	"curiosity":    "https://youtu.be/P4boyXQuUIw?si=h0tWCRZXAPId6l10",
	"perseverance": "https://youtu.be/5qqsMjy8Rx0?si=QAT-ZeW4L4oNnalM",
}

// randIntN is swapped out in tests to make photo selection deterministic.
var randIntN = rand.Intn

type roverCamera struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

type roverFacts struct {
	Name        string        `json:"name"`
	LaunchDate  string        `json:"launch_date"`
	LandingDate string        `json:"landing_date"`
	Status      string        `json:"status"`
	TotalPhotos int           `json:"total_photos"`
	Cameras     []roverCamera `json:"cameras"`
}

type roverPhoto struct {
	ImgSrc    string      `json:"img_src"`
	EarthDate string      `json:"earth_date"`
	Camera    roverCamera `json:"camera"`
	Rover     roverFacts  `json:"rover"`
}

type roverPhotosPayload struct {
	Photos       []roverPhoto `json:"photos"`
	LatestPhotos []roverPhoto `json:"latest_photos"`
}

// RoverPhoto fetches one photo taken by the rover on the given Earth date and
// renders it as a post. An empty date asks for the latest photos instead.
func (c *Client) RoverPhoto(ctx context.Context, rover, date string) (string, error) {
	url := fmt.Sprintf("%s/%s/latest_photos?api_key=%s", c.marsBase, rover, c.apiKey)
	if date != "" {
		url = fmt.Sprintf("%s/%s/photos?earth_date=%s&api_key=%s", c.marsBase, rover, date, c.apiKey)
	}

	var payload roverPhotosPayload
	if err := c.getJSON(ctx, "rover", url, &payload); err != nil {
		return "", err
	}

	photos := payload.Photos
	if date == "" {
		photos = payload.LatestPhotos
	}
	if len(photos) == 0 {
		return "", &NoDataError{Date: date}
	}

	photo := pickPhoto(rover, photos)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s Rover\n\n", emoji.Rocket, photo.Rover.Name)
	fmt.Fprintf(&b, "%s %s\n\n", emoji.Date, dates.Reformat(photo.EarthDate, dates.LayoutISO, dates.LayoutLong))
	fmt.Fprintf(&b, "%s Camera: %s\n\n", emoji.Camera, photo.Camera.FullName)
	fmt.Fprintf(&b, "%s Image Link: %s", emoji.Link, photo.ImgSrc)
	return b.String(), nil
}

// pickPhoto walks the rover's camera preference list and returns a random
// photo from the first camera that has any, falling back to a random photo
// from the whole batch.
func pickPhoto(rover string, photos []roverPhoto) roverPhoto {
	for _, cam := range roverCameras[rover] {
		var matched []roverPhoto
		for _, p := range photos {
			if p.Camera.Name == cam {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			return matched[randIntN(len(matched))]
		}
	}
	return photos[randIntN(len(photos))]
}

// RoverInfo fetches the rover's mission facts and renders them as a post.
// The facts ride along on the latest-photos payload.
func (c *Client) RoverInfo(ctx context.Context, rover string) (string, error) {
	url := fmt.Sprintf("%s/%s/latest_photos?api_key=%s", c.marsBase, rover, c.apiKey)

	var payload roverPhotosPayload
	if err := c.getJSON(ctx, "rover", url, &payload); err != nil {
		return "", err
	}
	if len(payload.LatestPhotos) == 0 {
		return "", &NoDataError{}
	}
	facts := payload.LatestPhotos[0].Rover

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s Rover\n\n", emoji.Rocket, facts.Name)
	fmt.Fprintf(&b, "%s Launch Date: %s\n\n", emoji.Date, dates.Reformat(facts.LaunchDate, dates.LayoutISO, dates.LayoutLong))
	fmt.Fprintf(&b, "%s Landing Date: %s\n\n", emoji.Date, dates.Reformat(facts.LandingDate, dates.LayoutISO, dates.LayoutLong))
	fmt.Fprintf(&b, "%s Status: %s\n\n", emoji.Star, facts.Status)
	fmt.Fprintf(&b, "%s Total Photos: %d\n\n", emoji.Picture, facts.TotalPhotos)
	b.WriteString(emoji.Camera + " Cameras:\n")
	for _, cam := range facts.Cameras {
		fmt.Fprintf(&b, "  %s %s\n", emoji.Label, cam.FullName)
	}
	fmt.Fprintf(&b, "\n%s Video about the Rover: %s", emoji.MovieCamera, roverVideos[rover])
	return b.String(), nil
}
