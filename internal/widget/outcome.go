package widget

import (
	"errors"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
	"github.com/PetoAdam/homenavi/weather-widget/internal/visualcrossing"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateLoading
	StateRendered
	StateErrorShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateErrorShown:
		return "error-shown"
	default:
		return "unknown"
	}
}

// Outcome is the result of one submission: either a rendered view model or
// the error that stopped it.
type Outcome struct {
	State     State
	ViewModel *models.ViewModel
	Err       error
}

func (o Outcome) OK() bool { return o.Err == nil && o.ViewModel != nil }

// Kind names the outcome for logs and metrics: "ok", "validation",
// "in_flight", "render", a fetch kind such as "network", or "unknown".
func (o Outcome) Kind() string {
	switch {
	case o.Err == nil:
		return "ok"
	case errors.Is(o.Err, ErrEmptyLocation):
		return "validation"
	case errors.Is(o.Err, ErrSubmissionInFlight):
		return "in_flight"
	case errors.Is(o.Err, ErrRender):
		return "render"
	}
	if kind, ok := visualcrossing.KindOf(o.Err); ok {
		return string(kind)
	}
	return "unknown"
}
