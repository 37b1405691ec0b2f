package meeting

import "strings"

// SessionState is the lifecycle state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StatePaused
	StateStopped
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// AudioStore is the storage collaborator a session uses to keep and merge
// raw audio takes.
type AudioStore interface {
	// Exists reports whether the referenced take is readable.
	Exists(ref string) bool
	// Merge combines the takes, in order, into one canonical recording
	// and returns its reference.
	Merge(refs []string) (string, error)
}

// Session accumulates recorded audio takes for one meeting and merges
// them into a single canonical recording on Stop. A session is not safe
// for concurrent use; callers must serialize access.
type Session struct {
	store          AudioStore
	state          SessionState
	segments       []string
	pending        string
	finalRecording string
	labels         map[string]string
}

// NewSession returns an idle session backed by the given store.
func NewSession(store AudioStore) *Session {
	return &Session{
		store:  store,
		labels: make(map[string]string),
	}
}

// Start marks the session as recording.
func (s *Session) Start() {
	s.state = StateRecording
}

// UpdatePending remembers the latest captured-but-unqueued take. Only one
// pending take is buffered at a time; the last write wins.
func (s *Session) UpdatePending(ref string) {
	if ref != "" && s.store.Exists(ref) {
		s.pending = ref
	}
}

// Pause queues ref, or the pending take when ref is empty, and moves the
// session to Paused. Pausing with nothing to queue only transitions.
func (s *Session) Pause(ref string) {
	if ref != "" {
		s.queue(ref)
	} else if s.pending != "" {
		s.queue(s.pending)
	}
	s.state = StatePaused
}

// Stop queues like Pause and then consolidates all queued takes into the
// canonical recording. On an empty session it returns an empty reference
// and no error, and the session stays idle. Stopping an already-stopped
// session with nothing new queued returns the existing recording
// unchanged. On a merge failure the session stays Paused with its
// segments intact so the caller can inspect or retry.
func (s *Session) Stop(ref string) (string, error) {
	wasStopped := s.state == StateStopped
	s.Pause(ref)
	if len(s.segments) == 0 {
		if wasStopped {
			s.state = StateStopped
			return s.finalRecording, nil
		}
		s.finalRecording = ""
		s.state = StateIdle
		return "", nil
	}
	final, err := s.store.Merge(s.segments)
	if err != nil {
		return "", err
	}
	s.segments = nil
	s.finalRecording = final
	s.state = StateStopped
	return final, nil
}

// Reset clears all session state and returns to Idle.
func (s *Session) Reset() {
	s.segments = nil
	s.pending = ""
	s.finalRecording = ""
	s.labels = make(map[string]string)
	s.state = StateIdle
}

// UpdateLabel sets a user-entered display label for a raw speaker id.
// An empty label removes the entry.
func (s *Session) UpdateLabel(speakerID, label string) {
	cleaned := strings.TrimSpace(label)
	if cleaned == "" {
		delete(s.labels, speakerID)
		return
	}
	s.labels[speakerID] = cleaned
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Segments returns the queued take references in insertion order.
func (s *Session) Segments() []string {
	out := make([]string, len(s.segments))
	copy(out, s.segments)
	return out
}

// Pending returns the buffered take reference, if any.
func (s *Session) Pending() string {
	return s.pending
}

// FinalRecording returns the canonical recording reference. It is set
// only after a successful Stop on a non-empty session.
func (s *Session) FinalRecording() string {
	return s.finalRecording
}

// Labels returns a copy of the user-entered speaker label overrides.
func (s *Session) Labels() map[string]string {
	out := make(map[string]string, len(s.labels))
	for k, v := range s.labels {
		out[k] = v
	}
	return out
}

func (s *Session) queue(ref string) {
	if ref != "" && s.store.Exists(ref) {
		s.segments = append(s.segments, ref)
	}
	s.pending = ""
}
