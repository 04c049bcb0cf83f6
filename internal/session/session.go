// Package session holds per-chat conversation state between Telegram updates.
// Each chat owns exactly one Session, created lazily on first use and kept for
// the process lifetime.
package session

import "sync"

// Operation identifies the NASA flow currently awaiting user input for a chat.
// At most one operation is pending at a time; the tagged value replaces the
// independent boolean flags the flows would otherwise need.
type Operation int

const (
	// OpNone means no conversation is in flight.
	OpNone Operation = iota
	// OpPictureOfDay awaits a date for the astronomy picture of the day.
	OpPictureOfDay
	// OpEarthImagery awaits a date for EPIC Earth snapshots.
	OpEarthImagery
	// OpRoverPhotos awaits a rover choice and then a date for rover photos.
	OpRoverPhotos
	// OpRoverInfo awaits a rover choice for rover information.
	OpRoverInfo
)

// String returns the log-friendly name of the operation.
func (o Operation) String() string {
	switch o {
	case OpPictureOfDay:
		return "apod"
	case OpEarthImagery:
		return "epic"
	case OpRoverPhotos:
		return "rover_photos"
	case OpRoverInfo:
		return "rover_info"
	default:
		return "none"
	}
}

// NeedsDate reports whether the operation still expects a date reply.
func (o Operation) NeedsDate() bool {
	switch o {
	case OpPictureOfDay, OpEarthImagery, OpRoverPhotos:
		return true
	}
	return false
}

// Rover identifies the Mars rover chosen within a rover flow.
type Rover int

const (
	// RoverNone means no rover has been chosen yet.
	RoverNone Rover = iota
	// RoverCuriosity selects the Curiosity rover.
	RoverCuriosity
	// RoverPerseverance selects the Perseverance rover.
	RoverPerseverance
)

// String returns the API name of the rover as used in request URLs.
func (r Rover) String() string {
	switch r {
	case RoverCuriosity:
		return "curiosity"
	case RoverPerseverance:
		return "perseverance"
	default:
		return "none"
	}
}

// Session stores the conversation state of a single chat.
type Session struct {
	// Operation is the flow currently awaiting input, OpNone when idle.
	Operation Operation
	// Rover is the chosen rover; meaningful only for rover flows.
	Rover Rover
	// LastPromptID is the message ID of the most recent inline-keyboard
	// prompt, kept so stale prompts can be retracted.
	LastPromptID int
	// DeliveryInFlight guards against a second "fetching" placeholder while
	// a multi-message delivery is still running.
	DeliveryInFlight bool
}

// AwaitingDate reports whether the session expects the next free-text message
// to be a date.
func (s *Session) AwaitingDate() bool {
	return s.Operation.NeedsDate()
}

// Store keeps one Session per chat. The lock is held only while reading or
// writing session fields, never across network calls, so a slow provider call
// for one chat does not block routing for another.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for a chat, creating an idle one if necessary.
func (st *Store) Get(chatID int64) *Session {
	st.mu.RLock()
	sess, ok := st.sessions[chatID]
	st.mu.RUnlock()
	if ok {
		return sess
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok = st.sessions[chatID]; ok {
		return sess
	}
	sess = &Session{}
	st.sessions[chatID] = sess
	return sess
}

// Begin starts a new pending operation for a chat, replacing whatever flow was
// active before. The rover choice is cleared; a fresh flow always re-asks.
func (st *Store) Begin(chatID int64, op Operation) *Session {
	sess := st.Get(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	sess.Operation = op
	sess.Rover = RoverNone
	return sess
}

// SetRover records the rover choice for a chat's active rover flow.
func (st *Store) SetRover(chatID int64, rover Rover) {
	sess := st.Get(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	sess.Rover = rover
}

// SetPrompt records the message ID of the prompt most recently sent to a chat.
func (st *Store) SetPrompt(chatID int64, messageID int) {
	sess := st.Get(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	sess.LastPromptID = messageID
}

// TakePrompt returns the recorded prompt message ID and clears it.
func (st *Store) TakePrompt(chatID int64) int {
	sess := st.Get(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	id := sess.LastPromptID
	sess.LastPromptID = 0
	return id
}

// Reset returns a chat to the idle state. Called after every delivery and on
// every hard error so a session can never stay stuck mid-flow.
func (st *Store) Reset(chatID int64) {
	sess := st.Get(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	sess.Operation = OpNone
	sess.Rover = RoverNone
	sess.DeliveryInFlight = false
}

// Snapshot returns the chat's current operation and rover under the lock.
func (st *Store) Snapshot(chatID int64) (Operation, Rover) {
	sess := st.Get(chatID)
	st.mu.RLock()
	defer st.mu.RUnlock()
	return sess.Operation, sess.Rover
}

// SetDeliveryInFlight flips the placeholder guard for a chat and reports the
// previous value.
func (st *Store) SetDeliveryInFlight(chatID int64, v bool) bool {
	sess := st.Get(chatID)
	st.mu.Lock()
	defer st.mu.Unlock()
	prev := sess.DeliveryInFlight
	sess.DeliveryInFlight = v
	return prev
}
