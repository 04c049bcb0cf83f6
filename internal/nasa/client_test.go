package nasa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("TEST_KEY")
	c.apodBase = srv.URL + "/planetary/apod"
	c.epicBase = srv.URL + "/EPIC"
	c.marsBase = srv.URL + "/mars-photos/api/v1/rovers"
	c.imagesBase = srv.URL
	return c
}

func pinRand(t *testing.T, pick int) {
	t.Helper()
	prev := randIntN
	randIntN = func(n int) int {
		if pick >= n {
			return n - 1
		}
		return pick
	}
	t.Cleanup(func() { randIntN = prev })
}

func TestPictureOfDay(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "TEST_KEY" {
			t.Errorf("missing api key in %s", r.URL)
		}
		if r.URL.Query().Get("date") != "2024-04-24" {
			t.Errorf("date query = %q", r.URL.Query().Get("date"))
		}
		w.Write([]byte(`{
			"title": "Total Eclipse",
			"date": "2024-04-24",
			"explanation": "The Moon covers the Sun.",
			"url": "https://example.org/eclipse.jpg",
			"hdurl": "https://example.org/eclipse_hd.jpg"
		}`))
	}))

	post, err := c.PictureOfDay(context.Background(), "2024-04-24")
	if err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}
	for _, want := range []string{
		"Total Eclipse",
		"Apr 24, 2024",
		"Description: The Moon covers the Sun.",
		"4k Image Link: https://example.org/eclipse_hd.jpg",
		"HD Image Link: https://example.org/eclipse.jpg",
	} {
		if !strings.Contains(post, want) {
			t.Errorf("post missing %q:\n%s", want, post)
		}
	}
}

func TestPictureOfDayVideoFallback(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Flyover","date":"2024-01-02","explanation":"x","url":"https://youtu.be/abc"}`))
	}))

	post, err := c.PictureOfDay(context.Background(), "")
	if err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}
	if !strings.Contains(post, "YouTube Video Link: https://youtu.be/abc") {
		t.Errorf("post missing video link:\n%s", post)
	}
	if strings.Contains(post, "4k Image Link") {
		t.Errorf("video entry must not carry an image link:\n%s", post)
	}
}

func TestPictureOfDayConnectionError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.PictureOfDay(context.Background(), "")
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error = %v, want ConnectionError", err)
	}
}

func TestRefreshAvailableDates(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EPIC/api/natural/all" {
			t.Errorf("path = %s", r.URL.Path)
		}
		calls++
		w.Write([]byte(`[{"date":"2024-04-24"},{"date":"2024-04-23"}]`))
	}))

	for i := 0; i < 3; i++ {
		if err := c.RefreshAvailableDates(context.Background()); err != nil {
			t.Fatalf("refresh %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("listing fetched %d times, want 1", calls)
	}
	if !c.HasDate("2024-04-24") || !c.HasDate("2024-04-23") {
		t.Error("known dates must be present")
	}
	if c.HasDate("2024-04-22") {
		t.Error("unknown date must be absent")
	}
}

func TestRefreshAvailableDatesRetriesAfterFailure(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"date":"2024-04-24"}]`))
	}))

	if err := c.RefreshAvailableDates(context.Background()); err == nil {
		t.Fatal("first refresh must fail")
	}
	if err := c.RefreshAvailableDates(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if !c.HasDate("2024-04-24") {
		t.Error("date must be present after successful retry")
	}
}

func TestEarthImages(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EPIC/api/natural/date/2024-04-24" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"image":"epic_1b_20240424003633","caption":"Earth from a million miles away","date":"2024-04-24 00:31:45"},
			{"image":"epic_1b_20240424022712","caption":"Earth from a million miles away","date":"2024-04-24 02:22:24"}
		]`))
	}))

	posts, err := c.EarthImages(context.Background(), "2024-04-24")
	if err != nil {
		t.Fatalf("EarthImages: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if !strings.Contains(posts[0], "Earth from a million miles away") {
		t.Errorf("post missing caption:\n%s", posts[0])
	}
	if !strings.Contains(posts[0], "Apr 24, 2024 00:31:45") {
		t.Errorf("post missing formatted datetime:\n%s", posts[0])
	}
	if !strings.Contains(posts[0], "/EPIC/archive/natural/2024/04/24/png/epic_1b_20240424003633.png") {
		t.Errorf("post missing archive link:\n%s", posts[0])
	}
}

func TestRoverPhotoPrefersHazardCamera(t *testing.T) {
	pinRand(t, 0)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mars-photos/api/v1/rovers/curiosity/photos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("earth_date") != "2024-04-24" {
			t.Errorf("earth_date = %q", r.URL.Query().Get("earth_date"))
		}
		w.Write([]byte(`{"photos":[
			{"img_src":"https://mars.nasa.gov/nav.jpg","earth_date":"2024-04-24",
			 "camera":{"name":"NAVCAM","full_name":"Navigation Camera"},
			 "rover":{"name":"Curiosity"}},
			{"img_src":"https://mars.nasa.gov/fhaz.jpg","earth_date":"2024-04-24",
			 "camera":{"name":"FHAZ","full_name":"Front Hazard Avoidance Camera"},
			 "rover":{"name":"Curiosity"}}
		]}`))
	}))

	post, err := c.RoverPhoto(context.Background(), "curiosity", "2024-04-24")
	if err != nil {
		t.Fatalf("RoverPhoto: %v", err)
	}
	if !strings.Contains(post, "Front Hazard Avoidance Camera") {
		t.Errorf("expected the preferred FHAZ shot:\n%s", post)
	}
	if !strings.Contains(post, "https://mars.nasa.gov/fhaz.jpg") {
		t.Errorf("post missing image link:\n%s", post)
	}
}

func TestRoverPhotoLatestFallback(t *testing.T) {
	pinRand(t, 0)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mars-photos/api/v1/rovers/perseverance/latest_photos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"latest_photos":[
			{"img_src":"https://mars.nasa.gov/edl.jpg","earth_date":"2024-04-20",
			 "camera":{"name":"EDL_RUCAM","full_name":"Rover Up-Look Camera"},
			 "rover":{"name":"Perseverance"}}
		]}`))
	}))

	post, err := c.RoverPhoto(context.Background(), "perseverance", "")
	if err != nil {
		t.Fatalf("RoverPhoto: %v", err)
	}
	// No preferred camera in the batch; the random fallback still delivers.
	if !strings.Contains(post, "Rover Up-Look Camera") {
		t.Errorf("post missing camera:\n%s", post)
	}
}

func TestRoverPhotoNoData(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos":[]}`))
	}))

	_, err := c.RoverPhoto(context.Background(), "curiosity", "2012-08-05")
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("error = %v, want NoDataError", err)
	}
}

func TestRoverInfo(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"latest_photos":[
			{"img_src":"https://mars.nasa.gov/x.jpg","earth_date":"2024-04-20",
			 "camera":{"name":"NAVCAM","full_name":"Navigation Camera"},
			 "rover":{
				"name":"Curiosity","launch_date":"2011-11-26","landing_date":"2012-08-06",
				"status":"active","total_photos":695670,
				"cameras":[
					{"name":"FHAZ","full_name":"Front Hazard Avoidance Camera"},
					{"name":"NAVCAM","full_name":"Navigation Camera"}
				]}}
		]}`))
	}))

	post, err := c.RoverInfo(context.Background(), "curiosity")
	if err != nil {
		t.Fatalf("RoverInfo: %v", err)
	}
	for _, want := range []string{
		"Curiosity Rover",
		"Launch Date: Nov 26, 2011",
		"Landing Date: Aug 6, 2012",
		"Status: active",
		"Total Photos: 695670",
		"Front Hazard Avoidance Camera",
		"Video about the Rover: https://youtu.be/P4boyXQuUIw",
	} {
		if !strings.Contains(post, want) {
			t.Errorf("post missing %q:\n%s", want, post)
		}
	}
}

func TestSearchImage(t *testing.T) {
	pinRand(t, 0)
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Andromeda Galaxy" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("media_type") != "image" {
			t.Errorf("media_type = %q", r.URL.Query().Get("media_type"))
		}
		w.Write([]byte(`{"collection":{"items":[
			{"data":[{"title":"Andromeda in UV",
			          "date_created":"2012-11-15T00:00:00Z",
			          "description":"The Andromeda galaxy seen in ultraviolet. Image Credit: NASA/Swift"}],
			 "links":[{"href":"https://images-assets.nasa.gov/andromeda.jpg"}]}
		]}}`))
	}))

	post, err := c.SearchImage(context.Background(), "Andromeda Galaxy")
	if err != nil {
		t.Fatalf("SearchImage: %v", err)
	}
	if !strings.Contains(post, "Andromeda in UV") {
		t.Errorf("post missing title:\n%s", post)
	}
	if !strings.Contains(post, "Nov 15, 2012") {
		t.Errorf("post missing formatted date:\n%s", post)
	}
	if strings.Contains(post, "Image Credit") {
		t.Errorf("credit boilerplate must be trimmed:\n%s", post)
	}
	if !strings.Contains(post, "The Andromeda galaxy seen in ultraviolet.") {
		t.Errorf("post missing description:\n%s", post)
	}
	if !strings.Contains(post, "https://images-assets.nasa.gov/andromeda.jpg") {
		t.Errorf("post missing link:\n%s", post)
	}
}

func TestSearchImageNoResults(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"collection":{"items":[]}}`))
	}))

	_, err := c.SearchImage(context.Background(), "zzzzz")
	var noResults *NoResultsError
	if !errors.As(err, &noResults) {
		t.Fatalf("error = %v, want NoResultsError", err)
	}
}
