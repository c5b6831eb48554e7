package games

import (
	"fmt"
	"time"
)

// Controller applies scoring actions to game states. It holds no game
// state and no package-level data; every call is a computation over the
// state passed in, so one controller serves any number of games.
type Controller struct {
	now func() time.Time
}

// NewController builds a controller that stamps timestamps with now. A nil
// now falls back to time.Now.
func NewController(now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{now: now}
}

// Outcome reports a single applied action: the state before and after,
// and whether a third out rolled the half-inning over. Previous is a
// snapshot taken before mutation; no history beyond this single-step diff
// is retained anywhere.
type Outcome struct {
	Action       ActionName
	Previous     GameState
	New          GameState
	AutoAdvanced bool
}

// Apply dispatches one action against the supplied state. The payload's
// structural validation runs first, then the business rules; a rejection
// at either tier returns an error and leaves nothing applied. On success
// the returned state carries a fresh UpdatedAt.
func (c *Controller) Apply(state GameState, action Action) (Outcome, error) {
	if action == nil {
		return Outcome{}, fmt.Errorf("nil action for game %s", state.ID)
	}
	if verr := action.validate(); verr != nil {
		return Outcome{}, verr
	}

	prev := state.Clone()
	now := c.now()

	var (
		next         GameState
		autoAdvanced bool
		err          error
	)
	switch a := action.(type) {
	case StartAction:
		next, err = applyStart(state, a, now)
	case ScoreAction:
		next, err = applyScore(state, a)
	case OutAction:
		next, autoAdvanced, err = applyOut(state, a)
	case AdvanceAction:
		next, err = applyAdvance(state, a)
	case EndAction:
		next, err = applyEnd(state, a, now)
	case CorrectAction:
		next, err = applyCorrect(state, a)
	case TransitionAction:
		next, err = applyTransition(state, a, now)
	default:
		return Outcome{}, fmt.Errorf("unsupported action %q", action.Name())
	}
	if err != nil {
		return Outcome{}, err
	}

	next.UpdatedAt = now
	return Outcome{
		Action:       action.Name(),
		Previous:     prev,
		New:          next,
		AutoAdvanced: autoAdvanced,
	}, nil
}
