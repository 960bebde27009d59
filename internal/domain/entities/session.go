package entities

import "time"

// Screen is the active page of a session.
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenHome     Screen = "home"
	ScreenQuestion Screen = "question"
)

// NavigationState holds where a session is and which transient prompts are open.
type NavigationState struct {
	Screen          Screen
	Authenticated   bool
	CurrentQuestion *int // selected question index, nil when none
	ShowAnswer      bool // answer revealed on the question screen
	ConfirmReveal   bool // reveal confirmation prompt open
	ConfirmClear    bool // clear-progress confirmation pending on home
}

// NewNavigationState returns the state of a fresh, unauthenticated session.
func NewNavigationState() NavigationState {
	return NavigationState{Screen: ScreenLogin}
}

// Selected returns the selected question index.
func (s NavigationState) Selected() (int, bool) {
	if s.CurrentQuestion == nil {
		return 0, false
	}
	return *s.CurrentQuestion, true
}

// Session is the in-memory state of one chat.
type Session struct {
	ID        int64
	State     NavigationState
	Progress  *ProgressStore
	StartedAt time.Time
}

// NewSession creates a session in its initial state.
func NewSession(id int64) *Session {
	return &Session{
		ID:        id,
		State:     NewNavigationState(),
		Progress:  NewProgressStore(),
		StartedAt: time.Now(),
	}
}
