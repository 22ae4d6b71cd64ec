// Package studio owns the per-browser-session state of the tattoo
// preview studio: form fields, the selected photo, the current result,
// the comparison slider and the gallery. All state is in memory and
// scoped to the page lifetime; nothing is persisted.
package studio

import (
	"sync"
	"time"

	"github.com/inkworks-labs/inkstudio/internal/compare"
	"github.com/inkworks-labs/inkstudio/internal/gallery"
	"github.com/inkworks-labs/inkstudio/internal/imaging"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
)

// Action identifies a backend call a session can have outstanding.
type Action string

const (
	ActionGenerate Action = "generate"
	ActionAlter    Action = "alter"
)

// Form holds the design parameters the user typed.
type Form struct {
	Style     string
	Theme     string
	ColorMode string
	Placement string
}

// Photo is the user's uploaded or captured reference photo.
type Photo struct {
	Data     []byte
	MimeType string
	Name     string
	Preview  string // data URL for display
}

// Session is all mutable state for a single browser session. Handlers
// mutate it through methods; the internal mutex serializes concurrent
// requests from the same browser.
type Session struct {
	ID string

	mu           sync.Mutex
	form         Form
	photo        *Photo
	cameraActive bool
	result       tattoo.Result
	lastError    string
	inFlight     map[Action]bool
	compare      *compare.State
	gallery      gallery.Gallery
	selection    *gallery.Selection
	touched      time.Time
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		inFlight:  make(map[Action]bool),
		compare:   compare.New(""),
		selection: gallery.NewSelection(),
		touched:   time.Now(),
	}
}

// touch records activity for idle eviction. Callers hold mu.
func (s *Session) touch() {
	s.touched = time.Now()
}

// Form returns a copy of the current form fields.
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the form fields.
func (s *Session) SetForm(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
	s.touch()
}

// Photo returns the current photo, or nil when none is selected.
func (s *Session) Photo() *Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photo
}

// SetPhoto stores a newly uploaded or captured photo, replacing any
// previous one, and lets the slider observe the change.
func (s *Session) SetPhoto(data []byte, mimeType, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = &Photo{
		Data:     data,
		MimeType: mimeType,
		Name:     name,
		Preview:  imaging.DataURL(mimeType, data),
	}
	s.observeLocked()
	s.touch()
}

// CameraActive reports the camera toggle state.
func (s *Session) CameraActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraActive
}

// SetCameraActive flips the camera toggle. The media stream itself is
// acquired and released in the browser; the server only tracks the
// switch position.
func (s *Session) SetCameraActive(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameraActive = on
	s.touch()
}

// Result returns the current generated result.
func (s *Session) Result() tattoo.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// SetResult installs a new result, appends it to the gallery and feeds
// the slider's freeze rule.
func (s *Session) SetResult(res tattoo.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = res
	s.lastError = ""
	s.gallery.Add(res)
	s.observeLocked()
	s.touch()
}

// ClearResult drops the current result ahead of a new generation
// attempt. The gallery keeps its copy.
func (s *Session) ClearResult() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = tattoo.Result{}
	s.lastError = ""
	s.observeLocked()
	s.touch()
}

// Error returns the error to display, empty when none.
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SetError records an error for display. Errors are terminal for the
// triggering action only.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
	s.touch()
}

// TryBegin marks action as in flight. It returns false when the action
// is already outstanding, preventing duplicate submissions.
func (s *Session) TryBegin(action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[action] {
		return false
	}
	s.inFlight[action] = true
	s.touch()
	return true
}

// End clears the in-flight mark for action.
func (s *Session) End(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, action)
}

// InFlight reports whether action is outstanding.
func (s *Session) InFlight(action Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[action]
}

// Compare runs fn against the slider state under the session lock.
func (s *Session) Compare(fn func(*compare.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.compare)
	s.touch()
}

// CompareState returns a snapshot of the slider state.
func (s *Session) CompareState() compare.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.compare
}

// Gallery runs fn against the gallery and selection under the session
// lock.
func (s *Session) Gallery(fn func(*gallery.Gallery, *gallery.Selection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.gallery, s.selection)
	s.touch()
}

// GallerySnapshot returns the entries plus the selected indices.
func (s *Session) GallerySnapshot() ([]tattoo.Result, map[int]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.gallery.Entries()
	selected := make(map[int]bool, len(entries))
	for i := range entries {
		selected[i] = s.selection.Selected(i)
	}
	return entries, selected
}

// Reset clears the form, photo, current result and error, and turns the
// camera off. The gallery and its selection survive: reset is the
// form's start-over, not a page reload.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = Form{}
	s.photo = nil
	s.cameraActive = false
	s.result = tattoo.Result{}
	s.lastError = ""
	s.observeLocked()
	s.touch()
}

// observeLocked feeds the slider's freeze rule with the current
// before/after references. Callers hold mu.
func (s *Session) observeLocked() {
	before := ""
	if s.photo != nil {
		before = s.photo.Preview
	}
	after := ""
	if s.result.HasImage() {
		after = "data:image/png;base64," + s.result.ImageBase64
	}
	s.compare.Observe(before, after)
}
