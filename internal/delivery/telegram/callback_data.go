package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/quiz-presenter-bot/internal/domain/navigation"
)

// Callback action constants.
const (
	actionQuestion = "q"
	actionHome     = "home"
	actionLogout   = "logout"
	actionReveal   = "reveal"
	actionClear    = "clear"
	actionNoop     = "noop"
)

// Confirmation sub-actions.
const (
	confirmYes = "yes"
	confirmNo  = "no"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// toAction maps callback data to a navigation action.
// It returns false for malformed data and for buttons that carry no action.
func (cd callbackData) toAction() (navigation.Action, bool) {
	switch cd.Action {
	case actionQuestion:
		if len(cd.Params) != 1 {
			return navigation.Action{}, false
		}
		i, err := strconv.Atoi(cd.Params[0])
		if err != nil {
			return navigation.Action{}, false
		}
		return navigation.Select(i), true

	case actionHome:
		if len(cd.Params) > 1 {
			return navigation.Action{}, false
		}
		if _, ok := cd.page(); !ok {
			return navigation.Action{}, false
		}
		return navigation.GoHome(), true

	case actionLogout:
		return navigation.Logout(), len(cd.Params) == 0

	case actionReveal:
		return confirmAction(cd.Params, navigation.RequestReveal(), navigation.ConfirmReveal(), navigation.CancelReveal())

	case actionClear:
		return confirmAction(cd.Params, navigation.RequestClear(), navigation.ConfirmClear(), navigation.CancelClear())
	}

	return navigation.Action{}, false
}

// page returns the index page carried by a home callback, 0 when absent.
func (cd callbackData) page() (int, bool) {
	if cd.Action != actionHome || len(cd.Params) == 0 {
		return 0, true
	}
	p, err := strconv.Atoi(cd.Params[0])
	if err != nil || p < 0 {
		return 0, false
	}
	return p, true
}

func confirmAction(params []string, request, yes, no navigation.Action) (navigation.Action, bool) {
	if len(params) == 0 {
		return request, true
	}
	if len(params) != 1 {
		return navigation.Action{}, false
	}

	switch params[0] {
	case confirmYes:
		return yes, true
	case confirmNo:
		return no, true
	default:
		return navigation.Action{}, false
	}
}

// buildQuestionCallback builds callback data for opening a question.
func buildQuestionCallback(index int) string {
	return callbackData{
		Action: actionQuestion,
		Params: []string{strconv.Itoa(index)},
	}.encode()
}

func buildHomeCallback() string   { return actionHome }

// buildHomePageCallback builds callback data for one page of the question index.
func buildHomePageCallback(page int) string {
	return callbackData{
		Action: actionHome,
		Params: []string{strconv.Itoa(page)},
	}.encode()
}

func buildLogoutCallback() string { return actionLogout }
func buildNoopCallback() string   { return actionNoop }

func buildRevealCallback() string { return actionReveal }

func buildRevealConfirmCallback(yes bool) string {
	return callbackData{Action: actionReveal, Params: []string{confirmParam(yes)}}.encode()
}

func buildClearCallback() string { return actionClear }

func buildClearConfirmCallback(yes bool) string {
	return callbackData{Action: actionClear, Params: []string{confirmParam(yes)}}.encode()
}

func confirmParam(yes bool) string {
	if yes {
		return confirmYes
	}
	return confirmNo
}
