package navigation

// ActionKind names a user action.
type ActionKind string

const (
	ActionShow          ActionKind = "show"
	ActionLogin         ActionKind = "login"
	ActionLogout        ActionKind = "logout"
	ActionGoHome        ActionKind = "home"
	ActionSelect        ActionKind = "select"
	ActionRequestReveal ActionKind = "request_reveal"
	ActionConfirmReveal ActionKind = "confirm_reveal"
	ActionCancelReveal  ActionKind = "cancel_reveal"
	ActionRequestClear  ActionKind = "request_clear"
	ActionConfirmClear  ActionKind = "confirm_clear"
	ActionCancelClear   ActionKind = "cancel_clear"
)

// Action is a user action dispatched to the machine.
type Action struct {
	Kind     ActionKind
	Index    int    // ActionSelect
	Username string // ActionLogin
	Password string // ActionLogin
}

func Show() Action          { return Action{Kind: ActionShow} }
func Logout() Action        { return Action{Kind: ActionLogout} }
func GoHome() Action        { return Action{Kind: ActionGoHome} }
func RequestReveal() Action { return Action{Kind: ActionRequestReveal} }
func ConfirmReveal() Action { return Action{Kind: ActionConfirmReveal} }
func CancelReveal() Action  { return Action{Kind: ActionCancelReveal} }
func RequestClear() Action  { return Action{Kind: ActionRequestClear} }
func ConfirmClear() Action  { return Action{Kind: ActionConfirmClear} }
func CancelClear() Action   { return Action{Kind: ActionCancelClear} }

// Login submits credentials.
func Login(username, password string) Action {
	return Action{Kind: ActionLogin, Username: username, Password: password}
}

// Select opens the question at index.
func Select(index int) Action {
	return Action{Kind: ActionSelect, Index: index}
}

// EffectKind names a side effect requested by a transition.
type EffectKind string

const (
	EffectRecordProgress EffectKind = "record_progress"
	EffectClearProgress  EffectKind = "clear_progress"
)

// Effect is applied to the progress store by the caller after a transition.
type Effect struct {
	Kind  EffectKind
	Index int // EffectRecordProgress
}
