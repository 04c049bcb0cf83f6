package bot

import (
	"context"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	"astrobot/internal/nasa"
	"astrobot/internal/session"
)

// stubContext implements the slice of tele.Context the handlers touch. The
// embedded interface panics on anything unexpected, which is what we want.
type stubContext struct {
	tele.Context

	chat   *tele.Chat
	sender *tele.User
	text   string

	store map[string]any
	sent  []string
}

func newStubContext(chatID int64, text string) *stubContext {
	return &stubContext{
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: chatID, FirstName: "Ada"},
		text:   text,
		store:  make(map[string]any),
	}
}

func (s *stubContext) Chat() *tele.Chat    { return s.chat }
func (s *stubContext) Sender() *tele.User  { return s.sender }
func (s *stubContext) Text() string        { return s.text }
func (s *stubContext) Update() tele.Update { return tele.Update{} }

func (s *stubContext) Message() *tele.Message {
	msg := &tele.Message{Text: s.text}
	if cmd, payload, ok := strings.Cut(s.text, " "); ok && strings.HasPrefix(cmd, "/") {
		msg.Payload = payload
	}
	return msg
}

func (s *stubContext) Send(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		s.sent = append(s.sent, text)
	}
	return nil
}

func (s *stubContext) Get(key string) any      { return s.store[key] }
func (s *stubContext) Set(key string, val any) { s.store[key] = val }

func (s *stubContext) lastSent(t *testing.T) string {
	t.Helper()
	if len(s.sent) == 0 {
		t.Fatal("nothing was sent")
	}
	return s.sent[len(s.sent)-1]
}

// stubServices satisfies all four provider interfaces with canned answers.
type stubServices struct {
	apodPost string
	apodErr  error

	epicPosts  []string
	epicDates  map[string]bool
	refreshErr error

	roverPost     string
	roverInfoPost string

	searchPost string
	searchErr  error

	gotRover string
	gotDate  string
	gotQuery string
}

func (s *stubServices) PictureOfDay(_ context.Context, date string) (string, error) {
	s.gotDate = date
	return s.apodPost, s.apodErr
}

func (s *stubServices) RefreshAvailableDates(context.Context) error { return s.refreshErr }
func (s *stubServices) HasDate(date string) bool                    { return s.epicDates[date] }

func (s *stubServices) EarthImages(_ context.Context, date string) ([]string, error) {
	s.gotDate = date
	return s.epicPosts, nil
}

func (s *stubServices) RoverPhoto(_ context.Context, rover, date string) (string, error) {
	s.gotRover, s.gotDate = rover, date
	return s.roverPost, nil
}

func (s *stubServices) RoverInfo(_ context.Context, rover string) (string, error) {
	s.gotRover = rover
	return s.roverInfoPost, nil
}

func (s *stubServices) SearchImage(_ context.Context, query string) (string, error) {
	s.gotQuery = query
	return s.searchPost, s.searchErr
}

type testBot struct {
	h       *Handlers
	svc     *stubServices
	deleted []int
}

func newTestBot(svc *stubServices) *testBot {
	tb := &testBot{svc: svc}
	tb.h = NewHandlers(Services{
		Pictures: svc,
		Earth:    svc,
		Rovers:   svc,
		Images:   svc,
	}, session.NewStore(), nil)

	nextID := 100
	tb.h.sendSync = func(c tele.Context, text string, _ ...interface{}) (*tele.Message, error) {
		if sc, ok := c.(*stubContext); ok {
			sc.sent = append(sc.sent, text)
		}
		nextID++
		return &tele.Message{ID: nextID}, nil
	}
	tb.h.deleteMsg = func(_ tele.Context, _ int64, messageID int) error {
		tb.deleted = append(tb.deleted, messageID)
		return nil
	}
	return tb
}

func (tb *testBot) assertIdle(t *testing.T, chatID int64) {
	t.Helper()
	op, rover := tb.h.sessions.Snapshot(chatID)
	if op != session.OpNone || rover != session.RoverNone {
		t.Fatalf("session not reset: op=%v rover=%v", op, rover)
	}
}

func TestRoverFlowDeliversPhoto(t *testing.T) {
	tb := newTestBot(&stubServices{roverPost: "rover photo post"})
	c := newStubContext(1, "/rover")

	if err := tb.h.RoverPhotos(c); err != nil {
		t.Fatalf("RoverPhotos: %v", err)
	}
	if got := c.lastSent(t); got != textChooseRover {
		t.Fatalf("prompt = %q", got)
	}

	if err := tb.h.ChooseCuriosity(c); err != nil {
		t.Fatalf("ChooseCuriosity: %v", err)
	}
	if got := c.lastSent(t); got != textChooseDate {
		t.Fatalf("second prompt = %q", got)
	}
	// The rover keyboard must be retracted when the date keyboard replaces it.
	if len(tb.deleted) != 1 {
		t.Fatalf("deleted = %v, want the rover prompt", tb.deleted)
	}

	if err := tb.h.SetDefaultDate(c); err != nil {
		t.Fatalf("SetDefaultDate: %v", err)
	}
	if got := c.lastSent(t); got != "rover photo post" {
		t.Fatalf("delivered = %q", got)
	}
	if tb.svc.gotRover != "curiosity" || tb.svc.gotDate != "" {
		t.Fatalf("provider called with rover=%q date=%q", tb.svc.gotRover, tb.svc.gotDate)
	}
	tb.assertIdle(t, 1)
}

func TestRoverInfoDeliversOnRoverChoice(t *testing.T) {
	tb := newTestBot(&stubServices{roverInfoPost: "perseverance facts"})
	c := newStubContext(3, "/roverinfo")

	if err := tb.h.RoverInfo(c); err != nil {
		t.Fatalf("RoverInfo: %v", err)
	}
	if err := tb.h.ChoosePerseverance(c); err != nil {
		t.Fatalf("ChoosePerseverance: %v", err)
	}
	if got := c.lastSent(t); got != "perseverance facts" {
		t.Fatalf("delivered = %q", got)
	}
	if tb.svc.gotRover != "perseverance" {
		t.Fatalf("provider rover = %q", tb.svc.gotRover)
	}
	tb.assertIdle(t, 3)
}

func TestApodCustomDateFlow(t *testing.T) {
	tb := newTestBot(&stubServices{apodPost: "picture of the day"})
	c := newStubContext(4, "/apod")

	if err := tb.h.PictureOfDay(c); err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}
	if err := tb.h.SetCustomDate(c); err != nil {
		t.Fatalf("SetCustomDate: %v", err)
	}
	if got := c.lastSent(t); got != textEnterDate {
		t.Fatalf("date request = %q", got)
	}

	c.text = "2024-04-24"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText: %v", err)
	}
	if got := c.lastSent(t); got != "picture of the day" {
		t.Fatalf("delivered = %q", got)
	}
	if tb.svc.gotDate != "2024-04-24" {
		t.Fatalf("provider date = %q", tb.svc.gotDate)
	}
	tb.assertIdle(t, 4)
}

func TestBadDateRejectsAndResets(t *testing.T) {
	tb := newTestBot(&stubServices{})
	c := newStubContext(5, "/apod")

	if err := tb.h.PictureOfDay(c); err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}

	c.text = "not-a-date"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText: %v", err)
	}
	if got := c.lastSent(t); got != errDateFormat {
		t.Fatalf("reply = %q", got)
	}
	tb.assertIdle(t, 5)

	// The next free text is unrecognized, not a date.
	c.text = "2024-04-24"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText after reset: %v", err)
	}
	if got := c.lastSent(t); got != errUnknownInput {
		t.Fatalf("reply after reset = %q", got)
	}
}

func TestFutureDateRejected(t *testing.T) {
	tb := newTestBot(&stubServices{})
	c := newStubContext(6, "/apod")

	if err := tb.h.PictureOfDay(c); err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}
	c.text = "2999-01-01"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText: %v", err)
	}
	if got := c.lastSent(t); got != errDateNoPictures {
		t.Fatalf("reply = %q", got)
	}
	tb.assertIdle(t, 6)
}

func TestEpicDateMustBeAvailable(t *testing.T) {
	tb := newTestBot(&stubServices{
		epicDates: map[string]bool{"2024-04-24": true},
		epicPosts: []string{"earth one", "earth two"},
	})
	c := newStubContext(7, "/epic")

	if err := tb.h.EarthImagery(c); err != nil {
		t.Fatalf("EarthImagery: %v", err)
	}
	c.text = "2024-04-23"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText: %v", err)
	}
	if got := c.lastSent(t); got != errDateNoPictures {
		t.Fatalf("reply = %q", got)
	}
	tb.assertIdle(t, 7)

	if err := tb.h.EarthImagery(c); err != nil {
		t.Fatalf("EarthImagery again: %v", err)
	}
	c.text = "2024-04-24"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText: %v", err)
	}
	if got := c.lastSent(t); got != "earth two" {
		t.Fatalf("last post = %q", got)
	}
	tb.assertIdle(t, 7)
}

func TestEpicDateBeforeMissionStartRejected(t *testing.T) {
	tb := newTestBot(&stubServices{epicDates: map[string]bool{"2015-06-12": true}})
	c := newStubContext(8, "/epic")

	if err := tb.h.EarthImagery(c); err != nil {
		t.Fatalf("EarthImagery: %v", err)
	}
	c.text = "2015-06-12"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText: %v", err)
	}
	if got := c.lastSent(t); got != errDateNoPictures {
		t.Fatalf("reply = %q", got)
	}
}

func TestImageSearch(t *testing.T) {
	tb := newTestBot(&stubServices{searchPost: "andromeda post"})
	c := newStubContext(9, "/image Andromeda Galaxy")

	if err := tb.h.Image(c); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := c.lastSent(t); got != "andromeda post" {
		t.Fatalf("delivered = %q", got)
	}
	if tb.svc.gotQuery != "Andromeda Galaxy" {
		t.Fatalf("provider query = %q", tb.svc.gotQuery)
	}
}

func TestImageWithoutTopicShowsUsage(t *testing.T) {
	tb := newTestBot(&stubServices{})
	c := newStubContext(10, "/image")

	if err := tb.h.Image(c); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := c.lastSent(t); got != textImageUsage {
		t.Fatalf("reply = %q", got)
	}
}

func TestImageSearchNoResults(t *testing.T) {
	tb := newTestBot(&stubServices{searchErr: &nasa.NoResultsError{Query: "zzzzz"}})
	c := newStubContext(11, "/image zzzzz")

	err := tb.h.Image(c)
	if err == nil {
		t.Fatal("expected the provider error to surface")
	}
	if got := c.lastSent(t); got != errNoImagesFound {
		t.Fatalf("reply = %q", got)
	}
	tb.assertIdle(t, 11)
}

func TestConnectionErrorResets(t *testing.T) {
	tb := newTestBot(&stubServices{apodErr: &nasa.ConnectionError{}})
	c := newStubContext(12, "/apod")

	if err := tb.h.PictureOfDay(c); err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}
	if err := tb.h.SetDefaultDate(c); err == nil {
		t.Fatal("expected the provider error to surface")
	}
	if got := c.lastSent(t); got != errServerConnection {
		t.Fatalf("reply = %q", got)
	}
	tb.assertIdle(t, 12)
}

func TestCancelAbandonsFlow(t *testing.T) {
	tb := newTestBot(&stubServices{})
	c := newStubContext(13, "/apod")

	if err := tb.h.PictureOfDay(c); err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}
	if err := tb.h.CancelDate(c); err != nil {
		t.Fatalf("CancelDate: %v", err)
	}
	if len(tb.deleted) != 1 {
		t.Fatalf("deleted = %v, want the date prompt", tb.deleted)
	}
	tb.assertIdle(t, 13)
}

func TestTextBeforeRoverChoiceIsRejected(t *testing.T) {
	tb := newTestBot(&stubServices{})
	c := newStubContext(17, "/rover")

	if err := tb.h.RoverPhotos(c); err != nil {
		t.Fatalf("RoverPhotos: %v", err)
	}
	c.text = "2024-04-24"
	if err := tb.h.FreeText(c); err != nil {
		t.Fatalf("FreeText: %v", err)
	}
	if got := c.lastSent(t); got != errUnknownInput {
		t.Fatalf("reply = %q", got)
	}
	// The rover keyboard stays armed; the user can still tap it.
	if op, _ := tb.h.sessions.Snapshot(17); op != session.OpRoverPhotos {
		t.Fatalf("operation = %v, want OpRoverPhotos", op)
	}
}

func TestStaleCallbackIsRejected(t *testing.T) {
	tb := newTestBot(&stubServices{})
	c := newStubContext(14, "")

	if err := tb.h.SetDefaultDate(c); err != nil {
		t.Fatalf("SetDefaultDate: %v", err)
	}
	if got := c.lastSent(t); got != errUnknownInput {
		t.Fatalf("reply = %q", got)
	}
}

func TestSecondDeliveryIsDropped(t *testing.T) {
	tb := newTestBot(&stubServices{apodPost: "post"})
	c := newStubContext(15, "/apod")

	if err := tb.h.PictureOfDay(c); err != nil {
		t.Fatalf("PictureOfDay: %v", err)
	}
	tb.h.sessions.SetDeliveryInFlight(15, true)

	if err := tb.h.SetDefaultDate(c); err != nil {
		t.Fatalf("SetDefaultDate: %v", err)
	}
	for _, sent := range c.sent {
		if sent == "post" {
			t.Fatal("delivery must be dropped while another is in flight")
		}
	}
}

func TestStartResetsAndGreets(t *testing.T) {
	tb := newTestBot(&stubServices{})
	c := newStubContext(16, "/start")

	tb.h.sessions.Begin(16, session.OpRoverPhotos)
	if err := tb.h.Start(c); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := c.lastSent(t); !strings.Contains(got, "Hello, Ada!") {
		t.Fatalf("greeting = %q", got)
	}
	tb.assertIdle(t, 16)
}

func TestRegistryWiring(t *testing.T) {
	tb := newTestBot(&stubServices{})
	reg := buildRegistry(tb.h)

	for _, cmd := range []string{"/start", "/help", "/apod", "/epic", "/rover", "/roverinfo", "/image", "/stats"} {
		if _, _, ok := reg.LookupCommand(cmd); !ok {
			t.Errorf("command %s not registered", cmd)
		}
	}
	for _, key := range []string{
		cbSetCustomDate, cbSetDefaultDate, cbCancelDate,
		cbRoverCuriosity, cbRoverPerseverance, cbCancelRover,
	} {
		if _, ok := reg.GetCallback(key); !ok {
			t.Errorf("callback %s not registered", key)
		}
	}
	if reg.TextFallback() == nil {
		t.Error("text fallback not set")
	}

	visible := reg.ListCommands(true)
	for _, cmd := range visible {
		if cmd.Text == "/stats" {
			t.Error("/stats must be hidden from the public menu")
		}
	}
}
