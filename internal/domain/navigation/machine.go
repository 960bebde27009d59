// Package navigation implements the session screen transitions as a pure reducer:
// an action and the current state go in, the next state and the effects to apply come out.
package navigation

import (
	"crypto/subtle"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/entities"
)

// Credentials is the single shared account.
type Credentials struct {
	Username string
	Password string
}

// Match compares input against the configured account by exact equality.
func (c Credentials) Match(username, password string) bool {
	if c.Username == "" || c.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}

// Phase is the sub-state of the question screen.
type Phase string

const (
	PhaseNone       Phase = ""
	PhaseViewing    Phase = "viewing"
	PhaseConfirming Phase = "confirming_reveal"
	PhaseRevealed   Phase = "revealed"
	PhaseMissing    Phase = "missing"
)

// Machine applies actions to navigation states for a question bank of a fixed size.
type Machine struct {
	creds Credentials
	total int
}

// NewMachine creates a machine for the given account and number of questions.
func NewMachine(creds Credentials, total int) *Machine {
	return &Machine{creds: creds, total: total}
}

// Total returns the number of questions in the bank.
func (m *Machine) Total() int {
	return m.total
}

// Phase returns the question screen sub-state of s.
func (m *Machine) Phase(s entities.NavigationState) Phase {
	if s.Screen != entities.ScreenQuestion {
		return PhaseNone
	}

	idx, ok := s.Selected()
	switch {
	case !ok || idx < 0 || idx >= m.total:
		return PhaseMissing
	case s.ConfirmReveal:
		return PhaseConfirming
	case s.ShowAnswer:
		return PhaseRevealed
	default:
		return PhaseViewing
	}
}

// Apply runs action a against state s. The returned state is always renderable.
// On a guard failure the error is recoverable and the state is returned unchanged,
// except for forced redirects to Login and the question error sub-state.
func (m *Machine) Apply(s entities.NavigationState, a Action) (entities.NavigationState, []Effect, error) {
	if a.Kind == ActionLogin {
		return m.login(s, a)
	}

	if !s.Authenticated {
		next := entities.NewNavigationState()
		if a.Kind == ActionShow && s.Screen == entities.ScreenLogin {
			return next, nil, nil
		}
		return next, nil, entities.ErrAuthRequired
	}

	switch a.Kind {
	case ActionShow:
		return s, nil, nil
	case ActionLogout:
		return entities.NewNavigationState(), nil, nil
	}

	switch s.Screen {
	case entities.ScreenHome:
		return m.applyHome(s, a)
	case entities.ScreenQuestion:
		return m.applyQuestion(s, a)
	default:
		return s, nil, entities.ErrInvalidTransition
	}
}

func (m *Machine) login(s entities.NavigationState, a Action) (entities.NavigationState, []Effect, error) {
	if s.Screen != entities.ScreenLogin {
		return s, nil, entities.ErrInvalidTransition
	}

	if !m.creds.Match(a.Username, a.Password) {
		return entities.NewNavigationState(), nil, entities.ErrAuthMismatch
	}

	return entities.NavigationState{
		Screen:        entities.ScreenHome,
		Authenticated: true,
	}, nil, nil
}

func (m *Machine) applyHome(s entities.NavigationState, a Action) (entities.NavigationState, []Effect, error) {
	switch a.Kind {
	case ActionSelect:
		idx := a.Index
		next := entities.NavigationState{
			Screen:          entities.ScreenQuestion,
			Authenticated:   true,
			CurrentQuestion: &idx,
		}
		if idx < 0 || idx >= m.total {
			return next, nil, entities.ErrQuestionNotFound
		}
		return next, nil, nil

	case ActionGoHome:
		s.ConfirmClear = false
		return s, nil, nil

	case ActionRequestClear:
		s.ConfirmClear = true
		return s, nil, nil

	case ActionConfirmClear:
		if !s.ConfirmClear {
			return s, nil, entities.ErrInvalidTransition
		}
		s.ConfirmClear = false
		return s, []Effect{{Kind: EffectClearProgress}}, nil

	case ActionCancelClear:
		if !s.ConfirmClear {
			return s, nil, entities.ErrInvalidTransition
		}
		s.ConfirmClear = false
		return s, nil, nil

	default:
		return s, nil, entities.ErrInvalidTransition
	}
}

func (m *Machine) applyQuestion(s entities.NavigationState, a Action) (entities.NavigationState, []Effect, error) {
	if a.Kind == ActionGoHome {
		return entities.NavigationState{
			Screen:        entities.ScreenHome,
			Authenticated: true,
		}, nil, nil
	}

	phase := m.Phase(s)
	if phase == PhaseMissing {
		switch a.Kind {
		case ActionRequestReveal, ActionConfirmReveal, ActionCancelReveal:
			return s, nil, entities.ErrQuestionNotFound
		default:
			return s, nil, entities.ErrInvalidTransition
		}
	}

	switch a.Kind {
	case ActionRequestReveal:
		s.ConfirmReveal = true
		return s, nil, nil

	case ActionConfirmReveal:
		if phase != PhaseConfirming {
			return s, nil, entities.ErrInvalidTransition
		}
		idx, _ := s.Selected()
		s.ConfirmReveal = false
		s.ShowAnswer = true
		return s, []Effect{{Kind: EffectRecordProgress, Index: idx}}, nil

	case ActionCancelReveal:
		if phase != PhaseConfirming {
			return s, nil, entities.ErrInvalidTransition
		}
		s.ConfirmReveal = false
		return s, nil, nil

	default:
		return s, nil, entities.ErrInvalidTransition
	}
}
