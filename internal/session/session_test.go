package session

import (
	"sync"
	"testing"
)

func TestGetCreatesIdleSession(t *testing.T) {
	st := NewStore()
	sess := st.Get(42)
	if sess.Operation != OpNone {
		t.Fatalf("new session operation = %v, want OpNone", sess.Operation)
	}
	if sess.Rover != RoverNone {
		t.Fatalf("new session rover = %v, want RoverNone", sess.Rover)
	}
	if st.Get(42) != sess {
		t.Fatal("Get must return the same session for the same chat")
	}
}

func TestBeginIsMutuallyExclusive(t *testing.T) {
	st := NewStore()
	st.Begin(1, OpPictureOfDay)
	st.Begin(1, OpRoverPhotos)
	st.SetRover(1, RoverCuriosity)
	st.Begin(1, OpEarthImagery)

	op, rover := st.Snapshot(1)
	if op != OpEarthImagery {
		t.Fatalf("operation = %v, want OpEarthImagery", op)
	}
	if rover != RoverNone {
		t.Fatal("starting a new flow must clear the rover choice")
	}
}

func TestResetClearsEverything(t *testing.T) {
	st := NewStore()
	st.Begin(7, OpRoverPhotos)
	st.SetRover(7, RoverPerseverance)
	st.SetDeliveryInFlight(7, true)
	st.Reset(7)

	op, rover := st.Snapshot(7)
	if op != OpNone || rover != RoverNone {
		t.Fatalf("after reset: op=%v rover=%v", op, rover)
	}
	if st.Get(7).DeliveryInFlight {
		t.Fatal("reset must clear the delivery guard")
	}
}

func TestChatsAreIsolated(t *testing.T) {
	st := NewStore()
	st.Begin(1, OpPictureOfDay)
	st.Begin(2, OpRoverInfo)
	st.SetRover(2, RoverCuriosity)

	if op, _ := st.Snapshot(1); op != OpPictureOfDay {
		t.Fatalf("chat 1 operation = %v", op)
	}
	op, rover := st.Snapshot(2)
	if op != OpRoverInfo || rover != RoverCuriosity {
		t.Fatalf("chat 2 state = %v/%v", op, rover)
	}

	st.Reset(1)
	if op, _ := st.Snapshot(2); op != OpRoverInfo {
		t.Fatal("resetting chat 1 must not touch chat 2")
	}
}

func TestTakePromptClears(t *testing.T) {
	st := NewStore()
	st.SetPrompt(5, 101)
	if id := st.TakePrompt(5); id != 101 {
		t.Fatalf("TakePrompt = %d, want 101", id)
	}
	if id := st.TakePrompt(5); id != 0 {
		t.Fatalf("second TakePrompt = %d, want 0", id)
	}
}

func TestAwaitingDate(t *testing.T) {
	cases := []struct {
		op   Operation
		want bool
	}{
		{OpNone, false},
		{OpPictureOfDay, true},
		{OpEarthImagery, true},
		{OpRoverPhotos, true},
		{OpRoverInfo, false},
	}
	for _, tc := range cases {
		s := &Session{Operation: tc.op}
		if got := s.AwaitingDate(); got != tc.want {
			t.Errorf("AwaitingDate(%v) = %v, want %v", tc.op, got, tc.want)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			st.Begin(chat, OpPictureOfDay)
			st.SetPrompt(chat, int(chat))
			st.Snapshot(chat)
			st.Reset(chat)
		}(int64(i % 4))
	}
	wg.Wait()
}
